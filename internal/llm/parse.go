package llm

import "strings"

// ExtractJSON pulls a JSON object out of free-form model output, stripping
// markdown fences and surrounding prose. Returns "" when no object is found.
func ExtractJSON(output string) string {
	output = strings.TrimSpace(output)

	// Remove markdown fences
	if strings.HasPrefix(output, "```json") {
		output = strings.TrimPrefix(output, "```json")
		if idx := strings.LastIndex(output, "```"); idx != -1 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	} else if strings.HasPrefix(output, "```") {
		output = strings.TrimPrefix(output, "```")
		if idx := strings.LastIndex(output, "```"); idx != -1 {
			output = output[:idx]
		}
		output = strings.TrimSpace(output)
	}

	// Find the outermost JSON object
	start := strings.Index(output, "{")
	end := strings.LastIndex(output, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}

	return output[start : end+1]
}
