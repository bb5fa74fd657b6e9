package event

const WhatsappInboundMessageDestination string = "whatsapp_inbound_message"
const WhatsappInboundMessageConsumerPairing string = "whatsapp_inbound_message_pairing"

// WhatsappInboundMessage is published by the WhatsApp gateway for every
// message a user sends to the bot.
type WhatsappInboundMessage struct {
	MessageID string `json:"message_id"`
	From      string `json:"from"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}
