package backend_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"listing-bff/internal/contextkeys"
	"listing-bff/internal/core/domain"
	"listing-bff/internal/core/port"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBodyBytes = 1024

// ListingBackendClient - клиент удаленного REST-бэкенда объявлений.
type ListingBackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewListingBackendClient - конструктор. timeout <= 0 означает отсутствие ограничения.
func NewListingBackendClient(baseURL string, timeout time.Duration) *ListingBackendClient {
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &ListingBackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// doRequest выполняет запрос с trace_id и JSON-заголовками.
// Ответ не из 2xx превращается в ошибку domain.ErrBackendUnavailable с телом ответа.
func (c *ListingBackendClient) doRequest(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%w: %s %s returned status %d, body: %s",
			domain.ErrBackendUnavailable, method, path, resp.StatusCode, string(bodyBytes))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response of %s %s: %v", domain.ErrBackendUnavailable, method, path, err)
	}
	return nil
}

func (c *ListingBackendClient) logger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	l := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingBackendClient",
		"method":    method,
	})
	if len(fields) > 0 {
		l = l.WithFields(fields)
	}
	return l
}

// FetchListings загружает всю коллекцию объявлений
func (c *ListingBackendClient) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	clientLogger := c.logger(ctx, "FetchListings", nil)

	var dtos []listingDTO
	if err := c.doRequest(ctx, http.MethodGet, "/api/residency/allresd", nil, &dtos); err != nil {
		clientLogger.Error("Failed to fetch listings", err, nil)
		return nil, err
	}

	listings := make([]domain.Listing, len(dtos))
	for i, dto := range dtos {
		listings[i] = dto.toDomain()
	}
	clientLogger.Debug("Listings fetched", port.Fields{"count": len(listings)})
	return listings, nil
}

// FetchLikedIDs - идентификаторы избранного пользователя.
// Бэкенд отдает либо массив строк, либо массив объектов с полем id.
func (c *ListingBackendClient) FetchLikedIDs(ctx context.Context, email string) ([]string, error) {
	clientLogger := c.logger(ctx, "FetchLikedIDs", nil)

	var raw []json.RawMessage
	path := "/api/user/likes?email=" + url.QueryEscape(email)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &raw); err != nil {
		clientLogger.Error("Failed to fetch liked ids", err, nil)
		return nil, err
	}

	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			ids = append(ids, id)
			continue
		}
		var obj struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(item, &obj); err != nil || obj.ID == "" {
			clientLogger.Warn("Skipping unrecognized liked item", port.Fields{"item": string(item)})
			continue
		}
		ids = append(ids, obj.ID)
	}
	return ids, nil
}

func (c *ListingBackendClient) Like(ctx context.Context, listingID, email string) error {
	path := "/api/user/likes/" + url.PathEscape(listingID)
	if err := c.doRequest(ctx, http.MethodPost, path, emailRequest{Email: email}, nil); err != nil {
		c.logger(ctx, "Like", port.Fields{"listing_id": listingID}).Error("Like request failed", err, nil)
		return err
	}
	return nil
}

// Dislike отправляет DELETE с email в теле
func (c *ListingBackendClient) Dislike(ctx context.Context, listingID, email string) error {
	path := "/api/user/dislikes/" + url.PathEscape(listingID)
	if err := c.doRequest(ctx, http.MethodDelete, path, emailRequest{Email: email}, nil); err != nil {
		c.logger(ctx, "Dislike", port.Fields{"listing_id": listingID}).Error("Dislike request failed", err, nil)
		return err
	}
	return nil
}

func (c *ListingBackendClient) UpdateListing(ctx context.Context, listing domain.Listing) error {
	path := "/api/residency/update/" + url.PathEscape(listing.ID)
	if err := c.doRequest(ctx, http.MethodPut, path, listingFromDomain(listing), nil); err != nil {
		c.logger(ctx, "UpdateListing", port.Fields{"listing_id": listing.ID}).Error("Update request failed", err, nil)
		return err
	}
	return nil
}

func (c *ListingBackendClient) DeleteListing(ctx context.Context, listingID string) error {
	path := "/api/residency/delete/" + url.PathEscape(listingID)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		c.logger(ctx, "DeleteListing", port.Fields{"listing_id": listingID}).Error("Delete request failed", err, nil)
		return err
	}
	return nil
}

func (c *ListingBackendClient) UpdateUser(ctx context.Context, userID, email string) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/user/updateuser", updateUserRequest{Email: email, UserID: userID}, nil); err != nil {
		c.logger(ctx, "UpdateUser", port.Fields{"user_id": userID}).Error("Update user request failed", err, nil)
		return err
	}
	return nil
}
