package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/locscan/locscan/domain"
)

// GitHubNotifier posts validation outcomes back to a pull request. It is
// the only place that knows about the hosting platform; the engine never
// touches it.
type GitHubNotifier struct {
	client     restClient
	repository string
	prNumber   int
}

// restClient is the subset of the go-gh REST client used by the notifier
type restClient interface {
	Post(path string, body *bytes.Buffer, response interface{}) error
	Delete(path string, response interface{}) error
}

// goGHClient adapts api.RESTClient to the restClient interface
type goGHClient struct {
	client *api.RESTClient
}

func (c *goGHClient) Post(path string, body *bytes.Buffer, response interface{}) error {
	return c.client.Post(path, body, response)
}

func (c *goGHClient) Delete(path string, response interface{}) error {
	return c.client.Delete(path, response)
}

// NewGitHubNotifier creates a notifier for the given repository and pull
// request using ambient gh credentials
func NewGitHubNotifier(repository string, prNumber int) (*GitHubNotifier, error) {
	client, err := api.NewRESTClient(api.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &GitHubNotifier{
		client:     &goGHClient{client: client},
		repository: repository,
		prNumber:   prNumber,
	}, nil
}

// SubmitReport posts the report summary as a pull request comment
func (n *GitHubNotifier) SubmitReport(_ context.Context, report *domain.Report) error {
	payload := map[string]string{"body": formatReportComment(report)}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode comment payload: %w", err)
	}

	path := fmt.Sprintf("repos/%s/issues/%d/comments", n.repository, n.prNumber)
	if err := n.client.Post(path, bytes.NewBuffer(body), nil); err != nil {
		return fmt.Errorf("failed to post validation comment: %w", err)
	}

	return nil
}

// RequestLabel applies or removes the gate label on the pull request
func (n *GitHubNotifier) RequestLabel(_ context.Context, label string, failed bool) error {
	if failed {
		payload, err := json.Marshal(map[string][]string{"labels": {label}})
		if err != nil {
			return fmt.Errorf("failed to encode label payload: %w", err)
		}

		path := fmt.Sprintf("repos/%s/issues/%d/labels", n.repository, n.prNumber)
		if err := n.client.Post(path, bytes.NewBuffer(payload), nil); err != nil {
			return fmt.Errorf("failed to add label %s: %w", label, err)
		}
		return nil
	}

	path := fmt.Sprintf("repos/%s/issues/%d/labels/%s", n.repository, n.prNumber, url.PathEscape(label))
	if err := n.client.Delete(path, nil); err != nil {
		// The label not being present is the desired end state
		if strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "Not Found") {
			return nil
		}
		return fmt.Errorf("failed to remove label %s: %w", label, err)
	}

	return nil
}

// formatReportComment renders the report as a markdown comment
func formatReportComment(report *domain.Report) string {
	var sb strings.Builder

	if report.HasErrors {
		sb.WriteString("## ❌ Locale validation failed\n\n")
	} else {
		sb.WriteString("## ✅ Locale validation passed\n\n")
	}

	sb.WriteString("| Total | Passed | Failed | Skipped |\n")
	sb.WriteString("|---|---|---|---|\n")
	sb.WriteString(fmt.Sprintf("| %d | %d | %d | %d |\n",
		report.Summary.Total, report.Summary.Passed, report.Summary.Failed, report.Summary.Skipped))

	if report.Summary.Failed > 0 {
		sb.WriteString("\n<details>\n<summary>Errors</summary>\n\n")
		for _, r := range report.Results {
			if r.Status != domain.FileStatusFailed {
				continue
			}
			sb.WriteString(fmt.Sprintf("**`%s`**\n", r.File))
			for _, e := range r.Errors {
				sb.WriteString(fmt.Sprintf("- %s\n", e))
			}
		}
		sb.WriteString("\n</details>\n")
	}

	return sb.String()
}

// NoOpNotifier implements domain.PlatformNotifier without any platform
type NoOpNotifier struct{}

// SubmitReport is a no-op
func (n *NoOpNotifier) SubmitReport(_ context.Context, _ *domain.Report) error {
	return nil
}

// RequestLabel is a no-op
func (n *NoOpNotifier) RequestLabel(_ context.Context, _ string, _ bool) error {
	return nil
}
