package domain

const (
	DefaultUsername = "Customer"
	DefaultEmail    = "customer@example.com"
)

// Profile is what the login flow left behind. Username and Email are
// never empty; missing values are replaced by the defaults.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	LoginProvider string `json:"loginProvider,omitempty"`
}

type Preferences struct {
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	Newsletter         bool   `json:"newsletter"`
	DataSharing        bool   `json:"dataSharing"`
	ProfileVisibility  string `json:"profileVisibility"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		EmailNotifications: true,
		Newsletter:         true,
		DataSharing:        true,
		ProfileVisibility:  "public",
	}
}
