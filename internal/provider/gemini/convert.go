// Package gemini connects the gateway's tools to Google Gemini function
// calling.
package gemini

import (
	"encoding/base64"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, d := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        d.Name,
			Description: d.Description,
		}
		if d.Parameters != nil {
			fd.Parameters = toGeminiSchema(d.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema, including nested properties and
// array items, to a Gemini schema.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
		Default:     s.Default,
	}

	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if len(s.Enum) > 0 {
		schema.Enum = s.Enum
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}
	if len(s.Required) > 0 {
		schema.Required = s.Required
	}

	return schema
}

// toGeminiType converts a schema type to a Gemini type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// responseParts turns a tool result into the parts sent back to the model.
// Only items visible to the assistant are forwarded. Text is joined into
// the function response; images follow as inline data.
func responseParts(fc *genai.FunctionCall, items []tool.Content, err error) []*genai.Part {
	response := map[string]any{}
	if err != nil {
		response["error"] = err.Error()
		response["error_kind"] = string(errutil.KindOf(err))
		return []*genai.Part{functionResponsePart(fc, response)}
	}

	var texts []string
	var images []*genai.Part
	for _, item := range tool.ForAudience(items, tool.RoleAssistant) {
		if text, ok := item.AsText(); ok {
			texts = append(texts, text)
			continue
		}
		if item.Type == tool.ContentImage {
			data, decodeErr := base64.StdEncoding.DecodeString(item.Data)
			if decodeErr != nil {
				logrus.WithError(decodeErr).Warn("dropping undecodable image from tool result")
				continue
			}
			images = append(images, genai.NewPartFromBytes(data, item.MimeType))
		}
	}
	response["output"] = strings.Join(texts, "\n")

	return append([]*genai.Part{functionResponsePart(fc, response)}, images...)
}

func functionResponsePart(fc *genai.FunctionCall, response map[string]any) *genai.Part {
	return &genai.Part{
		FunctionResponse: &genai.FunctionResponse{
			ID:       fc.ID,
			Name:     fc.Name,
			Response: response,
		},
	}
}

// functionCalls collects the function calls of a candidate in order.
func functionCalls(candidate *genai.Candidate) []*genai.FunctionCall {
	if candidate.Content == nil {
		return nil
	}
	var calls []*genai.FunctionCall
	for _, part := range candidate.Content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

// candidateText concatenates the text parts of a candidate.
func candidateText(candidate *genai.Candidate) string {
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}
