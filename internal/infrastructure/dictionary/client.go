package dictionary

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"
	domain "github.com/mohammadpnp/person-service/internal/domain/dictionary"
)

const (
	MethodByID   = "by_id"
	MethodByName = "by_name"
	MethodAdd    = "add_type"

	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Observer counts dictionary-service calls.
type Observer interface {
	Lookup(method, outcome string)
}

type noopObserver struct{}

func (noopObserver) Lookup(string, string) {}

type Config struct {
	BaseURL          string
	Timeout          time.Duration
	TypeDictionaryID int64
	RequestIDHeader  string
	Observer         Observer
	HTTPClient       *http.Client
}

// Client talks to the dictionary-service. It never caches values and never
// retries.
type Client struct {
	baseURL    *url.URL
	typeDictID int64
	requestID  string
	observer   Observer
	httpClient *http.Client
}

type valueDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Dictionary *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"dictionary"`
}

type dictionaryDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid dictionary service url: %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.TypeDictionaryID <= 0 {
		cfg.TypeDictionaryID = domain.DefaultIDs().Type
	}
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    u,
		typeDictID: cfg.TypeDictionaryID,
		requestID:  cfg.RequestIDHeader,
		observer:   cfg.Observer,
		httpClient: cfg.HTTPClient,
	}, nil
}

func (c *Client) ResolveByID(ctx context.Context, id int64) (domain.Value, error) {
	var dto valueDTO
	path := "/api/dictionaryvalues/" + strconv.FormatInt(id, 10)

	if err := c.do(ctx, http.MethodGet, path, nil, &dto); err != nil {
		c.observer.Lookup(MethodByID, outcomeOf(err))
		return domain.Value{}, errors.Wrapf(err, "dictionary value %d", id)
	}

	c.observer.Lookup(MethodByID, OutcomeFound)
	return dto.toValue(0), nil
}

func (c *Client) ResolveByDictionaryAndName(ctx context.Context, dictionaryID int64, name string) (domain.Value, error) {
	var dto valueDTO
	path := "/api/dictionaryvalues/" + strconv.FormatInt(dictionaryID, 10) + "/value"
	query := url.Values{"name": []string{name}}

	if err := c.do(ctx, http.MethodGet, path, query, &dto); err != nil {
		c.observer.Lookup(MethodByName, outcomeOf(err))
		return domain.Value{}, errors.Wrapf(err, "dictionary value %q in dictionary %d", name, dictionaryID)
	}

	c.observer.Lookup(MethodByName, OutcomeFound)
	return dto.toValue(dictionaryID), nil
}

// AddType registers a new person type in the type dictionary. The
// dictionary-service answers with the dictionary, so the returned value has no
// id of its own.
func (c *Client) AddType(ctx context.Context, name string) (domain.Value, error) {
	var dto dictionaryDTO
	path := "/api/dictionaries/" + strconv.FormatInt(c.typeDictID, 10) + "/values"
	query := url.Values{"name": []string{name}}

	if err := c.do(ctx, http.MethodPost, path, query, &dto); err != nil {
		c.observer.Lookup(MethodAdd, outcomeOf(err))
		return domain.Value{}, errors.Wrapf(err, "add person type %q", name)
	}

	c.observer.Lookup(MethodAdd, OutcomeFound)
	dictionaryID := dto.ID
	if dictionaryID == 0 {
		dictionaryID = c.typeDictID
	}
	return domain.Value{DictionaryID: dictionaryID, Name: name}, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.requestID != "" {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			req.Header.Set(c.requestID, id)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "call dictionary service")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "read response")
	}

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrValueNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("dictionary service status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID returns a context whose outgoing dictionary calls carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func (d valueDTO) toValue(dictionaryID int64) domain.Value {
	if d.Dictionary != nil {
		dictionaryID = d.Dictionary.ID
	}
	return domain.Value{DictionaryID: dictionaryID, ID: d.ID, Name: d.Name}
}

func outcomeOf(err error) string {
	if errors.Is(err, domain.ErrValueNotFound) {
		return OutcomeNotFound
	}
	return OutcomeError
}
