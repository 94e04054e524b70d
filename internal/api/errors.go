package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"

	"banking-client/internal/errs"
)

type fastAPIIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func errUnexpected(field string) error {
	return fmt.Errorf("%w: missing %s", errs.ErrUnexpectedPayload, field)
}

// mapResponseError turns a transport failure or a non-2xx response into one
// of the errs types.
func mapResponseError(response *resty.Response, err error) error {
	if err != nil {
		return &errs.NetworkError{Err: err}
	}

	if response == nil {
		return &errs.NetworkError{Err: fmt.Errorf("empty response")}
	}

	if !response.IsError() && response.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return decodeError(response.StatusCode(), response.Body())
}

func decodeError(status int, body []byte) error {
	message := ""
	var fields *errs.ValidationError

	var payload map[string]json.RawMessage
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		message, fields = parsePayload(payload)
	}

	switch {
	// 403 is a refusal for a valid token, the session stays.
	case status == http.StatusUnauthorized:
		return &errs.AuthError{Message: message}
	case !fields.Empty():
		return fields
	case message != "":
		return &errs.BusinessError{Status: status, Message: message}
	default:
		return &errs.BusinessError{Status: status, Message: fmt.Sprintf("request failed with status %d", status)}
	}
}

func parsePayload(payload map[string]json.RawMessage) (string, *errs.ValidationError) {
	if raw, ok := payload["detail"]; ok {
		var detail string
		if json.Unmarshal(raw, &detail) == nil {
			return detail, nil
		}

		var issues []fastAPIIssue
		if json.Unmarshal(raw, &issues) == nil && len(issues) > 0 {
			return "", issuesToValidation(issues)
		}
	}

	for _, key := range []string{"message", "error"} {
		if raw, ok := payload[key]; ok {
			var msg string
			if json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg, nil
			}
		}
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := &errs.ValidationError{}
	for _, k := range keys {
		var msgs []string
		if json.Unmarshal(payload[k], &msgs) == nil && len(msgs) > 0 {
			fields.Add(k, msgs...)
		}
	}

	return "", fields
}

func issuesToValidation(issues []fastAPIIssue) *errs.ValidationError {
	fields := &errs.ValidationError{}

	for _, issue := range issues {
		field := "request"
		if n := len(issue.Loc); n > 0 {
			field = strings.TrimSpace(fmt.Sprint(issue.Loc[n-1]))
		}
		fields.Add(field, issue.Msg)
	}

	return fields
}
