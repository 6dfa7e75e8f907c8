package pubchem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/vapor/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultBaseURL is the PUG REST root.
	DefaultBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	// DefaultTimeout bounds a single request, transport included.
	DefaultTimeout = 10 * time.Second

	maxBodySize = 1 << 20
	properties  = "MolecularFormula,MolecularWeight,CanonicalSMILES,IUPACName"
)

// Client implements ports.PropertyDatabase over the PubChem PUG REST API.
// PubChem publishes identity data only, so records carry formula, SMILES and
// molecular weight but never vapor-pressure data.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another PUG REST root (tests, mirrors).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a PubChem client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: DefaultTimeout,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		userAgent: "vapor",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type propertyTable struct {
	PropertyTable struct {
		Properties []map[string]any `json:"Properties"`
	} `json:"PropertyTable"`
}

// compound mirrors one entry of PropertyTable.Properties. MolecularWeight is
// served as a string, hence the weakly typed decode.
type compound struct {
	CID                int     `mapstructure:"CID"`
	Formula            string  `mapstructure:"MolecularFormula"`
	MolecularWeight    float64 `mapstructure:"MolecularWeight"`
	CanonicalSMILES    string  `mapstructure:"CanonicalSMILES"`
	SMILES             string  `mapstructure:"SMILES"`
	ConnectivitySMILES string  `mapstructure:"ConnectivitySMILES"`
	IUPACName          string  `mapstructure:"IUPACName"`
}

// Query looks name up. Unknown names return domain.ErrNoData.
func (c *Client) Query(ctx context.Context, name string) (*domain.PropertyRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNoData
	}

	endpoint := fmt.Sprintf("%s/compound/name/%s/property/%s/JSON", c.baseURL, url.PathEscape(name), properties)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: pubchem has no compound named %q", domain.ErrNoData, name)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("pubchem: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var table propertyTable
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(table.PropertyTable.Properties) == 0 {
		return nil, fmt.Errorf("%w: empty property table for %q", domain.ErrNoData, name)
	}

	var cmp compound
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &cmp,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(table.PropertyTable.Properties[0]); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}

	smiles := cmp.CanonicalSMILES
	if smiles == "" {
		smiles = cmp.ConnectivitySMILES
	}
	if smiles == "" {
		smiles = cmp.SMILES
	}

	return &domain.PropertyRecord{
		Name:            name,
		Formula:         cmp.Formula,
		SMILES:          smiles,
		MolecularWeight: cmp.MolecularWeight,
	}, nil
}
