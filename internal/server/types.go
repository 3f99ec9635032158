package server

// turnPayload is one prior conversation message supplied by the client.
type turnPayload struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type askRequest struct {
	Question    string        `json:"question"`
	ChatHistory []turnPayload `json:"chat_history"`
}

type evidencePayload struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
	Title string  `json:"title"`
	Page  int     `json:"page"`
}

type askResponse struct {
	Answer   string            `json:"answer"`
	Evidence []evidencePayload `json:"evidence"`
}

type uploadRequest struct {
	Title   string `json:"title"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

type uploadResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

type indexResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
}

type searchItem struct {
	DocumentID string  `json:"document_id"`
	Title      string  `json:"title"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
	Grounded   bool    `json:"grounded"`
}

type searchResponse struct {
	Results []searchItem `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}
