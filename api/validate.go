package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/qri-io/jsonschema"
)

// Request payload schemas. Shape and required-field checks live here;
// conditional rules (text posts need content, media posts need URLs) stay in
// the handlers.

var signupSchema = mustSchema(`{
	"type": "object",
	"required": ["email", "password", "firstName", "lastName", "userType"],
	"properties": {
		"email": {"type": "string", "minLength": 3},
		"password": {"type": "string", "minLength": 6},
		"firstName": {"type": "string", "minLength": 1},
		"lastName": {"type": "string", "minLength": 1},
		"userType": {"type": "string", "enum": ["business", "contractor"]},
		"companyName": {"type": "string"},
		"businessType": {"type": "string"},
		"phoneNumber": {"type": "string"},
		"location": {"type": "string"},
		"skills": {"type": "array", "items": {"type": "string"}},
		"certifications": {"type": "array", "items": {"type": "string"}},
		"tags": {"type": "array", "items": {"type": "string"}},
		"bio": {"type": "string"}
	}
}`)

var postSchema = mustSchema(`{
	"type": "object",
	"required": ["postType"],
	"properties": {
		"content": {"type": "string"},
		"postType": {"type": "string", "enum": ["text", "media"]},
		"mediaUrls": {"type": "array", "items": {"type": "string"}},
		"mediaType": {"type": "string", "enum": ["image", "video"]},
		"location": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}}
	}
}`)

var jobOrderSchema = mustSchema(`{
	"type": "object",
	"required": ["title", "description"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string", "minLength": 1},
		"budgetRange": {"type": "string"},
		"projectSize": {"type": "string", "enum": ["small", "medium", "large"]},
		"deadline": {"type": "integer"},
		"location": {"type": "string"},
		"requiredSkills": {"type": "array", "items": {"type": "string"}},
		"status": {"type": "string", "enum": ["open", "in_progress", "completed", "cancelled"]}
	}
}`)

var contactSchema = mustSchema(`{
	"type": "object",
	"required": ["name", "email", "userType", "message"],
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"email": {"type": "string", "minLength": 3},
		"userType": {"type": "string", "enum": ["business", "contractor"]},
		"message": {"type": "string", "minLength": 1}
	}
}`)

var newsletterSchema = mustSchema(`{
	"type": "object",
	"required": ["email"],
	"properties": {
		"email": {"type": "string", "minLength": 3}
	}
}`)

func mustSchema(src string) *jsonschema.Schema {
	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(src), rs); err != nil {
		panic(fmt.Sprintf("invalid embedded schema: %v", err))
	}
	return rs
}

// validateBody checks raw JSON against a schema and writes a structured 400
// on failure. It reports whether the payload passed.
func validateBody(ctx context.Context, w http.ResponseWriter, rs *jsonschema.Schema, body []byte) bool {
	if !json.Valid(body) {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return false
	}

	keyErrs, err := rs.ValidateBytes(ctx, body)
	if err != nil {
		writeError(w, "Invalid request", http.StatusBadRequest)
		return false
	}
	if len(keyErrs) > 0 {
		errs := make([]fieldError, 0, len(keyErrs))
		for _, ke := range keyErrs {
			errs = append(errs, fieldError{Field: ke.PropertyPath, Message: ke.Message})
		}
		writeValidationError(w, errs)
		return false
	}

	return true
}
