// Package ai implements the AI gateway against the Gemini
// generateContent REST API. Responses are requested as structured JSON
// and validated before anything reaches the workflow.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Jijnash2636/medaiton/config"
	"github.com/Jijnash2636/medaiton/internal/domain/entity"
	"github.com/Jijnash2636/medaiton/internal/domain/gateway"
	"github.com/Jijnash2636/medaiton/pkg/validator"

	"github.com/sirupsen/logrus"
)

type GeminiClient struct {
	cfg        config.AIConfig
	httpClient *http.Client
	log        *logrus.Logger
	validator  *validator.CustomValidator
}

func NewGeminiClient(cfg config.AIConfig, log *logrus.Logger, v *validator.CustomValidator) *GeminiClient {
	return &GeminiClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
		validator:  v,
	}
}

// Wire types for generateContent.

type generateRequest struct {
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	Contents          []content         `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string      `json:"responseMimeType,omitempty"`
	ResponseSchema   *jsonSchema `json:"responseSchema,omitempty"`
}

type jsonSchema struct {
	Type       string                 `json:"type"`
	Enum       []string               `json:"enum,omitempty"`
	Properties map[string]*jsonSchema `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var triageSchema = &jsonSchema{
	Type: "OBJECT",
	Properties: map[string]*jsonSchema{
		"classification":      {Type: "STRING", Enum: []string{"Stable", "Moderate", "Critical"}},
		"summary":             {Type: "STRING"},
		"potentialSpecialist": {Type: "STRING"},
	},
	Required: []string{"classification", "summary", "potentialSpecialist"},
}

var soapSchema = &jsonSchema{
	Type: "OBJECT",
	Properties: map[string]*jsonSchema{
		"subjective": {Type: "STRING"},
		"objective":  {Type: "STRING"},
		"assessment": {Type: "STRING"},
		"plan":       {Type: "STRING"},
	},
	Required: []string{"subjective", "objective", "assessment", "plan"},
}

const triageSystemInstruction = "You are an expert medical triage assistant AI. Your role is to analyze patient " +
	"information to suggest a triage classification ('Stable', 'Moderate', 'Critical'). Your analysis is for " +
	"informational purposes and is not a diagnosis. Respond in JSON format according to the provided schema."

const notesSystemInstruction = "You are a Doctor Copilot AI. Your task is to assist physicians by generating " +
	"structured clinical documentation like SOAP notes based on provided patient data. Ensure the notes are " +
	"concise, professional, and well-organized. Respond in JSON format according to the provided schema."

type triagePayload struct {
	Classification      string `json:"classification" validate:"required,oneof=Stable Moderate Critical"`
	Summary             string `json:"summary" validate:"required"`
	PotentialSpecialist string `json:"potentialSpecialist" validate:"required"`
}

func (c *GeminiClient) SuggestTriage(ctx context.Context, req *gateway.TriageRequest) (*entity.TriageSuggestion, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the following patient information for triage.\n")
	fmt.Fprintf(&b, "- Name: %s\n- Age: %d\n- Gender: %s\n", req.Name, req.Age, req.Gender)
	if req.Department != "" {
		fmt.Fprintf(&b, "- Department Selected: %s\n", req.Department)
	}
	fmt.Fprintf(&b, "- Symptoms: %s\n", req.Symptoms)
	if req.Vitals != nil {
		fmt.Fprintf(&b, "- Vitals: BP %s, HR %d bpm, Temp %s°C, SpO2 %d%%\n",
			req.Vitals.BloodPressure, req.Vitals.HeartRate, req.Vitals.Temperature.StringFixed(1), req.Vitals.SpO2)
	}
	urgent := "No"
	if req.Urgent {
		urgent = "Yes"
	}
	fmt.Fprintf(&b, "- Urgent Request: %s\n\n", urgent)
	b.WriteString("Based on this, provide a triage classification, a brief summary, and suggest a potential specialist.")
	if req.Department != "" {
		fmt.Fprintf(&b, " The patient selected the '%s' department; consider this when suggesting a specialist.", req.Department)
	}

	raw, err := c.generate(ctx, c.cfg.TriageModel, triageSystemInstruction, b.String(), triageSchema)
	if err != nil {
		return nil, err
	}

	var payload triagePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("ai gateway: malformed triage response: %w", err)
	}
	if err := c.validator.Validate(&payload); err != nil {
		return nil, fmt.Errorf("ai gateway: triage response failed schema validation: %w", err)
	}

	return &entity.TriageSuggestion{
		Classification:      entity.TriageClassification(payload.Classification),
		Summary:             payload.Summary,
		PotentialSpecialist: payload.PotentialSpecialist,
	}, nil
}

func (c *GeminiClient) DraftSOAPNotes(ctx context.Context, req *gateway.NotesRequest) (*gateway.SOAPNotes, error) {
	var b strings.Builder
	b.WriteString("Generate SOAP notes for the following patient consultation.\n\nPatient Details:\n")
	fmt.Fprintf(&b, "- Name: %s, Age: %d, Gender: %s\n", req.Name, req.Age, req.Gender)
	fmt.Fprintf(&b, "- Symptoms/Reason for Visit: %s\n", req.Reason)
	if req.Vitals != nil {
		fmt.Fprintf(&b, "- Vitals: BP %s, HR %d bpm, Temp %s°C, SpO2 %d%%\n",
			req.Vitals.BloodPressure, req.Vitals.HeartRate, req.Vitals.Temperature.StringFixed(1), req.Vitals.SpO2)
	}
	b.WriteString("\nBased on this information, create a structured SOAP note.")

	raw, err := c.generate(ctx, c.cfg.NotesModel, notesSystemInstruction, b.String(), soapSchema)
	if err != nil {
		return nil, err
	}

	var notes gateway.SOAPNotes
	if err := json.Unmarshal([]byte(raw), &notes); err != nil {
		return nil, fmt.Errorf("ai gateway: malformed SOAP response: %w", err)
	}
	if err := c.validator.Validate(&notes); err != nil {
		return nil, fmt.Errorf("ai gateway: SOAP response failed schema validation: %w", err)
	}

	return &notes, nil
}

// generate performs one bounded call and returns the model's JSON text.
// There is no retry; a failure surfaces to the caller untouched.
func (c *GeminiClient) generate(ctx context.Context, model, systemInstruction, prompt string, schema *jsonSchema) (string, error) {
	if c.cfg.APIKey == "" {
		return "", gateway.ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqBody := generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimRight(c.cfg.BaseURL, "/"), model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnf("AI gateway call failed: %+v", err)
		return "", fmt.Errorf("ai gateway: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai gateway: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warnf("AI gateway returned status %d: %s", resp.StatusCode, body)
		return "", fmt.Errorf("ai gateway: unexpected status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("ai gateway: malformed response envelope: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai gateway: response carries no candidates")
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
