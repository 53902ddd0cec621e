package kafka

// Config holds the broker connection parameters for the producer.
type Config struct {
	Brokers []string

	// TLS enables TLS for broker connections.
	TLS bool

	// SASL authentication; Mechanism is "PLAIN", "SCRAM-SHA-256" or
	// "SCRAM-SHA-512".
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}
