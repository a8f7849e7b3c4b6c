package llm

// FromConfig picks the real client when an API key is configured and the
// mock otherwise, so the service runs end to end without credentials.
func FromConfig(baseURL, apiKey, model string) Client {
	if apiKey == "" {
		return NewMockClient()
	}
	return NewOpenAIClient(baseURL, apiKey, model)
}
