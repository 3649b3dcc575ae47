package chat

import (
	"fmt"
	"strings"

	"github.com/safarly/backend/internal/model/persona"
)

// Localized system and agent lines authored by the state machine itself.
// Gateway-produced text never passes through here.

func queuedLine(language string) string {
	if isArabic(language) {
		return "تم وضعك في قائمة الانتظار، سيتواصل معك أحد موظفي خدمة العملاء خلال لحظات..."
	}
	return "You are in the queue. A support agent will be with you shortly..."
}

func connectedLine(language string, p persona.Persona) string {
	if isArabic(language) {
		return fmt.Sprintf("تم توصيلك بموظف خدمة العملاء %s", p.LocalName)
	}
	return fmt.Sprintf("You are now connected with %s", p.Name)
}

func greetingLine(language string, p persona.Persona, guestName string) string {
	if isArabic(language) {
		if guestName != "" {
			return fmt.Sprintf("أهلاً وسهلاً %s! معك %s من فريق سفرلي، كيف أقدر أساعدك اليوم؟", guestName, p.LocalName)
		}
		return fmt.Sprintf("أهلاً وسهلاً! معك %s من فريق سفرلي، كيف أقدر أساعدك اليوم؟", p.LocalName)
	}
	if guestName != "" {
		return fmt.Sprintf("Hello %s! This is %s from the Safarly team. How can I help you today?", guestName, p.Name)
	}
	return fmt.Sprintf("Hello! This is %s from the Safarly team. How can I help you today?", p.Name)
}

func farewellLine(language, guestName string) string {
	if isArabic(language) {
		if guestName != "" {
			return fmt.Sprintf("شكراً لتواصلك معنا يا %s. تم إنهاء المحادثة لعدم النشاط، نسعد بخدمتك في أي وقت.", guestName)
		}
		return "شكراً لتواصلك معنا. تم إنهاء المحادثة لعدم النشاط، نسعد بخدمتك في أي وقت."
	}
	if guestName != "" {
		return fmt.Sprintf("Thank you for contacting us, %s. This chat was closed due to inactivity. We are happy to help any time.", guestName)
	}
	return "Thank you for contacting us. This chat was closed due to inactivity. We are happy to help any time."
}

func offlineLine(language string) string {
	if isArabic(language) {
		return "عذراً، خدمة المحادثة غير متاحة حالياً. يرجى التواصل معنا عبر صفحة اتصل بنا."
	}
	return "Sorry, live chat is currently unavailable. Please reach us through the contact page."
}

func isArabic(language string) bool {
	return strings.EqualFold(language, "ar")
}
