package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	WelcomeMessage = "안녕하세요! 스마트스토어 FAQ 챗봇입니다. 궁금하신 내용을 물어봐 주세요."

	// Returned when the validator decides a query is out of domain.
	OutOfDomainMessage = "저는 스마트스토어 FAQ를 위한 챗봇입니다. 스마트스토어에 대한 질문을 부탁드립니다."

	// Returned when the query is in-domain but retrieval found nothing.
	UnrecognizedMessage = "죄송합니다. 질문과 관련된 FAQ를 찾지 못했습니다. 조금 더 구체적으로 질문해 주시겠어요?"

	// Sent as an error event when answer generation fails mid-stream.
	GenerationFailedMessage = "죄송합니다. 답변 생성 중 문제가 발생했습니다. 잠시 후 다시 시도해 주세요."
)

const (
	// SSE event payload types
	ChatEventMessage  = "message"
	ChatEventFollowUp = "follow_up"
	ChatEventDone     = "done"
	ChatEventError    = "error"

	DoneSentinel = "[DONE]"
)
