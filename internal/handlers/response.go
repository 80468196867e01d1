package handlers

type MessageResponse struct {
	Body struct {
		Message string `json:"message"`
	}
}

func message(msg string) *MessageResponse {
	res := &MessageResponse{}
	res.Body.Message = msg
	return res
}
