package llm

import "context"

// MockLLM is a canned-response LLMClient for tests. When ResponseQueue is
// non-empty its entries are consumed in order before falling back to
// Response.
type MockLLM struct {
	Response      string
	ResponseQueue []string
	Err           error
	Prompts       []string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, nil
	}
	return m.Response, nil
}

// MockEmbedder returns vectors keyed by exact input text, Default otherwise.
// ImageVec serves every image input, which is enough for classifier tests
// where all that matters is where the image lands relative to the labels.
type MockEmbedder struct {
	Vectors  map[string][]float32
	Default  []float32
	ImageVec []float32
	Err      error
}

func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if v, ok := m.Vectors[text]; ok {
		return v, nil
	}
	return m.Default, nil
}

func (m *MockEmbedder) EmbedImage(ctx context.Context, image []byte) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.ImageVec != nil {
		return m.ImageVec, nil
	}
	return m.Default, nil
}
