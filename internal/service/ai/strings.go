package ai

import "strings"

// Apology is the localized text shown in place of a reply when the upstream
// model fails. It is the only thing the transcript ever sees on failure.
func Apology(language string) string {
	if strings.EqualFold(language, "ar") {
		return "عذراً، حدث خلل بسيط من طرفي. هل يمكنك إعادة إرسال رسالتك؟"
	}
	return "Sorry, something went wrong on my side. Could you send that again?"
}
