package generate

import (
	"errors"
	"strings"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Environments accepted by UserMessage.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// UserMessage turns err into text safe to show an end user. Development
// gets the full error chain; production gets a generic message per kind.
func UserMessage(err error, environment string) string {
	if err == nil {
		return ""
	}
	if environment == EnvDevelopment {
		return err.Error()
	}

	var e *site.Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch e.Kind {
	case site.InvalidInput:
		return e.Message
	case site.NotFound:
		return "Project not found."
	case site.MalformedResponse, site.SchemaViolation:
		return "The AI returned an unexpected response. Please try again."
	case site.InvalidMergeResult:
		return "The suggested change could not be applied. Please rephrase your instruction."
	case site.ModelUnavailable:
		return "The AI model is temporarily unavailable. Please try again later."
	}

	cause := strings.ToLower(err.Error())
	switch {
	case strings.Contains(cause, "api key") || strings.Contains(cause, "api_key"):
		return "The AI provider API key is not configured."
	case strings.Contains(cause, "rate limit") || strings.Contains(cause, "status code: 429") || strings.Contains(cause, "status 429"):
		return "Rate limit exceeded. Please try again in a moment."
	case strings.Contains(cause, "insufficient_quota"):
		return "AI provider quota exceeded. Please check your account billing."
	}
	return "Failed to generate website. Please try again with a more detailed description."
}
