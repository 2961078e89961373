package announce

// Config defines the MQTT announcement parameters. Announcements are
// disabled entirely when no broker is configured.
type Config struct {
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
	Retain   bool   `json:"retain"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "forcecharge"
	}
	if c.Topic == "" {
		c.Topic = "forcecharge/ranges"
	}
}

// Enabled reports whether announcements are configured.
func (c Config) Enabled() bool { return c.Broker != "" }
