package llm

// Response-shape extraction for providers that do not follow the OpenAI
// format exactly. Each extractor inspects the decoded JSON document and
// reports whether it found generated text; they are tried in order.

type extractor func(map[string]any) (string, bool)

var extractors = []extractor{
	extractChoiceMessage, // choices[0].message.content (OpenAI, DeepSeek)
	extractChoiceText,    // choices[0].text (legacy completions)
	extractResultField,   // result
	extractResponseField, // response
}

// ExtractText tries each known response shape in order and returns the
// generated text from the first one that matches.
func ExtractText(payload map[string]any) (string, bool) {
	for _, extract := range extractors {
		if text, ok := extract(payload); ok {
			return text, true
		}
	}
	return "", false
}

func firstChoice(payload map[string]any) (map[string]any, bool) {
	choices, ok := payload["choices"].([]any)
	if !ok || len(choices) == 0 {
		return nil, false
	}
	choice, ok := choices[0].(map[string]any)
	return choice, ok
}

func extractChoiceMessage(payload map[string]any) (string, bool) {
	choice, ok := firstChoice(payload)
	if !ok {
		return "", false
	}
	message, ok := choice["message"].(map[string]any)
	if !ok {
		return "", false
	}
	content, ok := message["content"].(string)
	return content, ok
}

func extractChoiceText(payload map[string]any) (string, bool) {
	choice, ok := firstChoice(payload)
	if !ok {
		return "", false
	}
	text, ok := choice["text"].(string)
	return text, ok
}

func extractResultField(payload map[string]any) (string, bool) {
	result, ok := payload["result"].(string)
	return result, ok
}

func extractResponseField(payload map[string]any) (string, bool) {
	response, ok := payload["response"].(string)
	return response, ok
}
