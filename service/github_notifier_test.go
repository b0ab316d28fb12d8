package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/testutil"
)

// mockRESTClient records REST calls for assertions
type mockRESTClient struct {
	postPaths   []string
	postBodies  []string
	deletePaths []string
	postErr     error
	deleteErr   error
}

func (m *mockRESTClient) Post(path string, body *bytes.Buffer, _ interface{}) error {
	m.postPaths = append(m.postPaths, path)
	if body != nil {
		m.postBodies = append(m.postBodies, body.String())
	}
	return m.postErr
}

func (m *mockRESTClient) Delete(path string, _ interface{}) error {
	m.deletePaths = append(m.deletePaths, path)
	return m.deleteErr
}

func testNotifier(mock *mockRESTClient) *GitHubNotifier {
	return &GitHubNotifier{
		client:     mock,
		repository: "acme/locales",
		prNumber:   42,
	}
}

func TestSubmitReportPostsComment(t *testing.T) {
	mock := &mockRESTClient{}
	n := testNotifier(mock)

	report := &domain.Report{
		HasErrors: true,
		Summary:   domain.Summary{Total: 2, Passed: 1, Failed: 1},
		Results: []domain.FileResult{
			{File: "en.json", Success: true, Status: domain.FileStatusPassed},
			{File: "de.json", Success: false, Status: domain.FileStatusFailed, Errors: []string{"file is empty"}},
		},
	}

	testutil.AssertNoError(t, n.SubmitReport(context.Background(), report))

	testutil.AssertEqual(t, 1, len(mock.postPaths))
	testutil.AssertEqual(t, "repos/acme/locales/issues/42/comments", mock.postPaths[0])

	var payload map[string]string
	testutil.AssertNoError(t, json.Unmarshal([]byte(mock.postBodies[0]), &payload))
	body := payload["body"]
	for _, want := range []string{"Locale validation failed", "| 2 | 1 | 1 | 0 |", "de.json", "file is empty"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected comment to contain %q, got:\n%s", want, body)
		}
	}
	if strings.Contains(body, "en.json") {
		t.Error("Passing files should not be listed in the error details")
	}
}

func TestSubmitReportPassing(t *testing.T) {
	mock := &mockRESTClient{}
	n := testNotifier(mock)

	report := &domain.Report{
		Summary: domain.Summary{Total: 1, Passed: 1},
		Results: []domain.FileResult{{File: "en.json", Success: true, Status: domain.FileStatusPassed}},
	}
	testutil.AssertNoError(t, n.SubmitReport(context.Background(), report))

	var payload map[string]string
	testutil.AssertNoError(t, json.Unmarshal([]byte(mock.postBodies[0]), &payload))
	if !strings.Contains(payload["body"], "Locale validation passed") {
		t.Errorf("Expected passing headline, got:\n%s", payload["body"])
	}
}

func TestRequestLabelOnFailure(t *testing.T) {
	mock := &mockRESTClient{}
	n := testNotifier(mock)

	testutil.AssertNoError(t, n.RequestLabel(context.Background(), "locale-validation-failed", true))

	testutil.AssertEqual(t, 1, len(mock.postPaths))
	testutil.AssertEqual(t, "repos/acme/locales/issues/42/labels", mock.postPaths[0])
	if !strings.Contains(mock.postBodies[0], `"locale-validation-failed"`) {
		t.Errorf("Expected label in payload, got %s", mock.postBodies[0])
	}
	testutil.AssertEqual(t, 0, len(mock.deletePaths))
}

func TestRequestLabelOnSuccess(t *testing.T) {
	mock := &mockRESTClient{}
	n := testNotifier(mock)

	testutil.AssertNoError(t, n.RequestLabel(context.Background(), "locale-validation-failed", false))

	testutil.AssertEqual(t, 0, len(mock.postPaths))
	testutil.AssertEqual(t, 1, len(mock.deletePaths))
	testutil.AssertEqual(t, "repos/acme/locales/issues/42/labels/locale-validation-failed", mock.deletePaths[0])
}

func TestRequestLabelRemovalToleratesMissingLabel(t *testing.T) {
	mock := &mockRESTClient{deleteErr: errors.New("HTTP 404: Not Found")}
	n := testNotifier(mock)

	// The label not being there already is the desired outcome
	testutil.AssertNoError(t, n.RequestLabel(context.Background(), "locale-validation-failed", false))
}

func TestRequestLabelPropagatesOtherErrors(t *testing.T) {
	mock := &mockRESTClient{deleteErr: errors.New("HTTP 500: boom")}
	n := testNotifier(mock)

	err := n.RequestLabel(context.Background(), "locale-validation-failed", false)
	testutil.AssertError(t, err)
}

func TestSubmitReportPropagatesPostError(t *testing.T) {
	mock := &mockRESTClient{postErr: errors.New("HTTP 401: Unauthorized")}
	n := testNotifier(mock)

	err := n.SubmitReport(context.Background(), &domain.Report{Results: []domain.FileResult{}})
	testutil.AssertError(t, err)
	if !strings.Contains(err.Error(), "failed to post validation comment") {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestNoOpNotifier(t *testing.T) {
	n := &NoOpNotifier{}
	testutil.AssertNoError(t, n.SubmitReport(context.Background(), nil))
	testutil.AssertNoError(t, n.RequestLabel(context.Background(), "x", true))
}
