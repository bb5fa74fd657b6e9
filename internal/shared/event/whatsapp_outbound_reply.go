package event

const WhatsappOutboundReplyDestination string = "whatsapp_outbound_reply"

// WhatsappOutboundReply asks the WhatsApp gateway to send Text to To,
// quoting the inbound message ReplyTo when it is set.
type WhatsappOutboundReply struct {
	To      string `json:"to"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to,omitempty"`
}
