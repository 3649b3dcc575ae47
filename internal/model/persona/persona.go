package persona

// Persona captures the simulated support-agent identity shown to visitors.
type Persona struct {
	ID        string `json:"id"`
	Name      string `json:"name"`      // canonical (English) display name
	LocalName string `json:"localName"` // Arabic display name
	Avatar    string `json:"avatar"`
	Gender    string `json:"gender"`
}

// Seed provides the fixed roster of support agents. One is picked at random
// when a session leaves the queue; the roster itself never changes at runtime.
func Seed() []Persona {
	return []Persona{
		{ID: "amira", Name: "Amira", LocalName: "أميرة", Avatar: "/avatars/amira.png", Gender: "female"},
		{ID: "omar", Name: "Omar", LocalName: "عمر", Avatar: "/avatars/omar.png", Gender: "male"},
		{ID: "layla", Name: "Layla", LocalName: "ليلى", Avatar: "/avatars/layla.png", Gender: "female"},
		{ID: "khaled", Name: "Khaled", LocalName: "خالد", Avatar: "/avatars/khaled.png", Gender: "male"},
		{ID: "nour", Name: "Nour", LocalName: "نور", Avatar: "/avatars/nour.png", Gender: "female"},
		{ID: "tariq", Name: "Tariq", LocalName: "طارق", Avatar: "/avatars/tariq.png", Gender: "male"},
		{ID: "salma", Name: "Salma", LocalName: "سلمى", Avatar: "/avatars/salma.png", Gender: "female"},
		{ID: "yousef", Name: "Yousef", LocalName: "يوسف", Avatar: "/avatars/yousef.png", Gender: "male"},
		{ID: "huda", Name: "Huda", LocalName: "هدى", Avatar: "/avatars/huda.png", Gender: "female"},
		{ID: "fadi", Name: "Fadi", LocalName: "فادي", Avatar: "/avatars/fadi.png", Gender: "male"},
		{ID: "rania", Name: "Rania", LocalName: "رانيا", Avatar: "/avatars/rania.png", Gender: "female"},
		{ID: "sami", Name: "Sami", LocalName: "سامي", Avatar: "/avatars/sami.png", Gender: "male"},
		{ID: "dana", Name: "Dana", LocalName: "دانا", Avatar: "/avatars/dana.png", Gender: "female"},
		{ID: "hassan", Name: "Hassan", LocalName: "حسن", Avatar: "/avatars/hassan.png", Gender: "male"},
		{ID: "mariam", Name: "Mariam", LocalName: "مريم", Avatar: "/avatars/mariam.png", Gender: "female"},
	}
}
