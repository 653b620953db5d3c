package supabase

import (
	"github.com/supabase-community/supabase-go"
)

type Client struct {
	Supabase *supabase.Client
}

func NewClient(supabaseURL, serviceKey string) (*Client, error) {
	client, err := supabase.NewClient(supabaseURL, serviceKey, nil)
	if err != nil {
		return nil, err
	}

	return &Client{Supabase: client}, nil
}
