package source

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"property-revenue-sync/internal/domain/reservation"
	"property-revenue-sync/internal/infra"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/internal/pkg/errs"
	"property-revenue-sync/internal/pkg/sanitize"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 50
	maxBodyBytes    = 16 << 20
	maxErrorBody    = 512
)

// Client reads reservations, listings and finance lines from the booking provider.
type Client struct {
	baseURL       string
	token         string
	pageSize      int
	maxPages      int
	listingLimit  int
	targetCountry string
	timeout       time.Duration
	location      *time.Location
	httpClient    *http.Client
	logger        *slog.Logger
}

func NewClient(cfg config.SourceConfig, revenueCfg config.RevenueConfig, logger *slog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		token:         strings.TrimSpace(cfg.APIToken),
		pageSize:      pageSize,
		maxPages:      maxPages,
		listingLimit:  cfg.ListingLimit,
		targetCountry: strings.TrimSpace(cfg.TargetCountry),
		timeout:       timeout,
		location:      revenueCfg.Location(),
		httpClient:    &http.Client{},
		logger:        logger.With(slog.String("component", "source_client")),
	}
}

// FetchReservations pages with a fixed limit until a short page. Hitting the page ceiling is
// logged and the pages fetched so far are returned; any page failure aborts the whole fetch.
func (c *Client) FetchReservations(ctx context.Context, filter ReservationFilter) ([]RawReservation, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	var all []RawReservation
	for page := 0; ; page++ {
		if page >= c.maxPages {
			c.logger.Warn("reservation page ceiling reached, provider pagination may be broken",
				"pages", page, "reservations", len(all))
			break
		}

		query := url.Values{
			"limit":  {strconv.Itoa(c.pageSize)},
			"offset": {strconv.Itoa(page * c.pageSize)},
		}
		if filter.ModifiedSince != "" {
			query.Set("modifiedSince", filter.ModifiedSince)
		}

		var env resultEnvelope[RawReservation]
		if err := c.getJSON(ctx, "/reservations", query, &env); err != nil {
			return nil, errs.Mark(errs.Wrapf(err, "reservations page %d", page+1), errs.ErrFetchAborted)
		}
		all = append(all, env.Result...)

		if len(env.Result) < c.pageSize {
			break
		}
	}
	return all, nil
}

// FetchListings returns the target-market listings keyed by listing id.
func (c *Client) FetchListings(ctx context.Context) (map[string]reservation.Listing, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if c.listingLimit > 0 {
		query.Set("limit", strconv.Itoa(c.listingLimit))
	}

	var env resultEnvelope[RawListing]
	if err := c.getJSON(ctx, "/listings", query, &env); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "listings"), errs.ErrFetchAborted)
	}

	listings := make(map[string]reservation.Listing, len(env.Result))
	for _, raw := range env.Result {
		if !c.inTargetMarket(raw) {
			continue
		}
		id := string(raw.ID)
		name := raw.displayName()
		listings[id] = reservation.Listing{
			ID:       id,
			Name:     name,
			Category: reservation.Categorize(name, raw.BedroomsNumber.ptr()),
		}
	}
	return listings, nil
}

func (c *Client) FetchFinance(ctx context.Context, reservationID string) ([]FinanceLine, error) {
	if err := c.requireToken(); err != nil {
		return nil, err
	}

	var env resultEnvelope[FinanceLine]
	path := "/financeCalculatedField/reservation/" + url.PathEscape(reservationID)
	if err := c.getJSON(ctx, path, nil, &env); err != nil {
		return nil, errs.Wrapf(err, "finance for reservation %s", reservationID)
	}
	return env.Result, nil
}

// FetchAuthoritative runs one full provider read: listings once, every reservation page, the
// scope filter, then a finance lookup and normalization per in-scope reservation.
func (c *Client) FetchAuthoritative(ctx context.Context, now time.Time, windowDays int) ([]reservation.Reservation, error) {
	listings, err := c.FetchListings(ctx)
	if err != nil {
		return nil, err
	}

	raws, err := c.FetchReservations(ctx, ReservationFilter{})
	if err != nil {
		return nil, err
	}

	scope := reservation.Scope{Listings: listings, WindowDays: windowDays}
	localNow := now.In(c.location)

	out := make([]reservation.Reservation, 0, len(raws))
	skipped := 0
	for _, raw := range raws {
		src, ok := c.toSource(raw)
		if !ok {
			skipped++
			continue
		}
		if !scope.Includes(src, localNow) {
			continue
		}
		finance := c.lookupFinance(ctx, src.ID)
		out = append(out, reservation.Normalize(src, listings[src.ListingID], finance))
	}

	c.logger.Info("authoritative reservations fetched",
		"listings", len(listings), "raw", len(raws), "in_scope", len(out), "skipped_malformed", skipped)
	return out, nil
}

// lookupFinance never fails the caller: errors fall through to the flag-based derivation.
func (c *Client) lookupFinance(ctx context.Context, reservationID string) *reservation.FinanceFigures {
	lines, err := c.FetchFinance(ctx, reservationID)
	if err != nil {
		c.logger.Warn("finance lookup failed, deriving payment from reservation fields",
			"reservation_id", reservationID, "error", sanitize.Error(err))
		return nil
	}
	for _, line := range lines {
		if line.FormulaFilled == "" {
			continue
		}
		if figures, ok := reservation.ParseFinanceFormula(line.FormulaFilled, line.FormulaResult.ptr()); ok {
			return &figures
		}
	}
	return nil
}

func (c *Client) toSource(raw RawReservation) (reservation.Source, bool) {
	id := string(raw.ID)
	if id == "" {
		return reservation.Source{}, false
	}
	arrival, errA := reservation.ParseDate(raw.ArrivalDate, c.location)
	departure, errD := reservation.ParseDate(raw.DepartureDate, c.location)
	if errA != nil && errD != nil {
		return reservation.Source{}, false
	}

	payments := make([]float64, 0, len(raw.Payments))
	for _, p := range raw.Payments {
		if p.Amount.Valid {
			payments = append(payments, p.Amount.Value)
		}
	}

	return reservation.Source{
		ID:                id,
		ListingID:         string(raw.ListingMapID),
		ListingName:       raw.ListingName,
		GuestName:         raw.guest(),
		ArrivalDate:       arrival,
		DepartureDate:     departure,
		ReservationStatus: raw.Status,
		Payment: reservation.PaymentInput{
			TotalAmount: raw.TotalPrice.Value,
			IsPaid:      bool(raw.IsPaid),
			RawStatus:   raw.PaymentStatus,
			Payments:    payments,
			PaidAmount:  raw.PaidAmount.ptr(),
			TotalPaid:   raw.TotalPaid.ptr(),
			AmountPaid:  raw.AmountPaid.ptr(),
			Balance:     raw.Balance.ptr(),
		},
	}, true
}

func (c *Client) inTargetMarket(l RawListing) bool {
	if c.targetCountry == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(l.Country), c.targetCountry) ||
		strings.EqualFold(strings.TrimSpace(l.CountryCode), c.targetCountry)
}

func (c *Client) requireToken() error {
	if c.token == "" {
		return infra.NewConfigurationError("booking provider token not configured", errs.ErrMissingToken)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errs.Wrap(err, "build provider request")
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return infra.NewTransportError("GET "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return infra.NewTransportError("GET "+path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return infra.NewHTTPError(resp.StatusCode, "GET "+path, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return infra.WrapRepoErr(c.logger, infra.KindDecodeFailure, "decode "+path, err)
	}
	return nil
}
