package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

const defaultEndpoint = "https://api.mymemory.translated.net/get"

// HTTPTranslator translates doctor prompts through a MyMemory-style GET
// endpoint. All failures are swallowed: the dialogue must keep flowing
// in English when the service is down, so the circuit breaker exists to
// stop hammering a dead endpoint, not to surface errors.
type HTTPTranslator struct {
	endpoint string
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	log      *logrus.Logger
}

// NewHTTPTranslator creates a translator against endpoint; an empty
// endpoint selects the public MyMemory API.
func NewHTTPTranslator(endpoint string, logger *logrus.Logger) *HTTPTranslator {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translator",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Translator circuit breaker state changed")
		},
	})

	return &HTTPTranslator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		breaker:  breaker,
		log:      logger,
	}
}

type translationResponse struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus int `json:"responseStatus"`
}

// Translate renders text in the target language code. English and empty
// targets pass through without a network call; any failure returns the
// input unchanged.
func (t *HTTPTranslator) Translate(ctx context.Context, text, lang string) string {
	if text == "" || lang == "" || lang == "en" {
		return text
	}

	result, err := t.breaker.Execute(func() (interface{}, error) {
		return t.fetch(ctx, text, lang)
	})
	if err != nil {
		t.log.WithFields(logrus.Fields{
			"lang":  lang,
			"error": err,
		}).Error("Translation failed")
		return text
	}
	return result.(string)
}

func (t *HTTPTranslator) fetch(ctx context.Context, text, lang string) (string, error) {
	query := url.Values{}
	query.Set("q", text)
	query.Set("langpair", "en|"+lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building translation request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation service returned %d", resp.StatusCode)
	}

	var parsed translationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding translation response: %w", err)
	}
	if parsed.ResponseStatus != 0 && parsed.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("translation service status %d", parsed.ResponseStatus)
	}
	if parsed.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("empty translation")
	}
	return parsed.ResponseData.TranslatedText, nil
}
