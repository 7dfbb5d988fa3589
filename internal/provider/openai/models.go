package openai

// SupportedModels returns the list of models known to the OpenAI provider.
func SupportedModels() []string {
	return []string{
		"gpt-4o",
		"gpt-4o-mini",
		"gpt-4.1",
		"gpt-4.1-mini",
		"gpt-4.1-nano",
		"gpt-4-turbo",
		"gpt-3.5-turbo",
	}
}

// buildModelSet creates a map for O(1) lookup.
func buildModelSet(models []string) map[string]bool {
	set := make(map[string]bool, len(models))
	for _, model := range models {
		set[model] = true
	}
	return set
}
