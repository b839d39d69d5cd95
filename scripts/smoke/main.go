package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// step is one request of the scenario. Path and Body may reference ids
// captured by earlier steps as {teacher}, {course} or {student}.
type step struct {
	Name    string
	Method  string
	Path    string
	Body    string
	Want    int
	Capture string
}

type result struct {
	Step     step
	Status   int
	Duration time.Duration
	Error    error
}

func scenario(suffix string) []step {
	return []step{
		{Name: "create teacher", Method: http.MethodPost, Path: "/teachers", Body: `{"name":"Ada ` + suffix + `"}`, Want: http.StatusCreated, Capture: "teacher"},
		{Name: "create course", Method: http.MethodPost, Path: "/courses", Body: `{"title":"CS101 ` + suffix + `","teacher_id":{teacher}}`, Want: http.StatusCreated, Capture: "course"},
		{Name: "course with unknown teacher", Method: http.MethodPost, Path: "/courses", Body: `{"title":"CS102","teacher_id":999999999}`, Want: http.StatusNotFound},
		{Name: "create student", Method: http.MethodPost, Path: "/students", Body: `{"name":"Bob ` + suffix + `"}`, Want: http.StatusCreated, Capture: "student"},
		{Name: "enroll", Method: http.MethodPost, Path: "/enrollments", Body: `{"student_id":{student},"course_id":{course}}`, Want: http.StatusCreated},
		{Name: "enroll again", Method: http.MethodPost, Path: "/enrollments", Body: `{"student_id":{student},"course_id":{course}}`, Want: http.StatusBadRequest},
		{Name: "roster", Method: http.MethodGet, Path: "/students?course_id={course}", Want: http.StatusOK},
		{Name: "roster export", Method: http.MethodGet, Path: "/courses/{course}/roster/export?format=csv", Want: http.StatusOK},
		{Name: "unenroll", Method: http.MethodDelete, Path: "/enrollments", Body: `{"student_id":{student},"course_id":{course}}`, Want: http.StatusNoContent},
		{Name: "re-enroll", Method: http.MethodPost, Path: "/enrollments", Body: `{"student_id":{student},"course_id":{course}}`, Want: http.StatusCreated},
		{Name: "page out of range", Method: http.MethodGet, Path: "/teachers?size=101", Want: http.StatusBadRequest},
	}
}

func main() {
	var (
		base    string
		timeout time.Duration
	)
	flag.StringVar(&base, "base", "http://localhost:8080/api/v1", "API base URL including prefix")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	ids := map[string]string{}
	var (
		results []result
		failed  int
	)
	for _, s := range scenario(time.Now().UTC().Format("150405")) {
		res := run(client, base, s, ids)
		if res.Error != nil || res.Status != s.Want {
			failed++
		}
		results = append(results, res)
		if s.Capture != "" && ids[s.Capture] == "" {
			break
		}
	}

	printReport(results)
	fmt.Printf("Failed steps: %d of %d\n", failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

func expand(raw string, ids map[string]string) string {
	for k, v := range ids {
		raw = strings.ReplaceAll(raw, "{"+k+"}", v)
	}
	return raw
}

func run(client *http.Client, base string, s step, ids map[string]string) result {
	res := result{Step: s}
	var body io.Reader
	if s.Body != "" {
		body = bytes.NewBufferString(expand(s.Body, ids))
	}
	req, err := http.NewRequest(s.Method, strings.TrimRight(base, "/")+expand(s.Path, ids), body)
	if err != nil {
		res.Error = err
		return res
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Error = err
		return res
	}
	defer resp.Body.Close()
	res.Status = resp.StatusCode

	if s.Capture != "" && resp.StatusCode == s.Want {
		id, err := readID(resp.Body)
		if err != nil {
			res.Error = fmt.Errorf("capture %s: %w", s.Capture, err)
			return res
		}
		ids[s.Capture] = id
	}
	return res
}

func readID(r io.Reader) (string, error) {
	var envelope struct {
		Data struct {
			ID json.Number `json:"id"`
		} `json:"data"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&envelope); err != nil {
		return "", err
	}
	if envelope.Data.ID == "" {
		return "", errors.New("response carries no id")
	}
	return envelope.Data.ID.String(), nil
}

func printReport(results []result) {
	fmt.Println("Smoke Report")
	fmt.Println("============")
	for _, res := range results {
		status := "OK"
		switch {
		case res.Error != nil:
			status = "ERROR"
		case res.Status != res.Step.Want:
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s (%s)\n", status, res.Step.Method, res.Step.Name, res.Duration)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
		} else {
			fmt.Printf("  Status: %d, want %d\n", res.Status, res.Step.Want)
		}
	}
}
