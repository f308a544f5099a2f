package config

// Receiver points at the website's puzzle receiver endpoint.
type Receiver struct {
	URL    string
	APIKey string
}

func NewReceiver() (*Receiver, error) {
	url, err := requireEnv("PUZZLE_API_URL")
	if err != nil {
		return nil, err
	}

	key, err := requireEnv("PUZZLE_API_KEY")
	if err != nil {
		return nil, err
	}

	return &Receiver{URL: url, APIKey: key}, nil
}
