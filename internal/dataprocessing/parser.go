package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"salespulse/pkg/contracts/domain"
)

// RejectedRow describes an input row that could not be turned into a
// record. Rejections are reported to the caller, never fatal to the load.
type RejectedRow struct {
	Line   int      `json:"line"`
	Reason string   `json:"reason"`
	Raw    []string `json:"raw,omitempty"`
}

// ParseResult is the outcome of loading one sales export.
type ParseResult struct {
	Records      []domain.SalesRecord `json:"records"`
	Rejected     []RejectedRow        `json:"rejected"`
	PeriodALabel string               `json:"period_a_label"`
	PeriodBLabel string               `json:"period_b_label"`
	HasPrice     bool                 `json:"has_price"`
	HasCategory  bool                 `json:"has_category"`
}

// ParserConfig holds parsing options.
type ParserConfig struct {
	// MarketplaceDomain rejects rows whose product URL does not contain
	// this substring. Empty disables the filter.
	MarketplaceDomain string
	// MaxRows caps the number of data rows accepted per upload. Zero
	// means no cap.
	MaxRows int
}

// Parser turns raw sales exports into validated SalesRecord collections.
// It tolerates the mixed formats real exports come in: with or without a
// header row, with or without a price column, with or without categories.
type Parser struct {
	logger *slog.Logger
	cfg    ParserConfig
}

// DefaultParserConfig mirrors the export format the dashboard was built
// for: eBay product URLs, uncapped row count.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{MarketplaceDomain: "ebay.com"}
}

// NewParser creates a parser with the given configuration.
func NewParser(logger *slog.Logger, cfg ParserConfig) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger.With(slog.String("component", "sales_parser")),
		cfg:    cfg,
	}
}

// ParseCSV reads a CSV sales export. Rows may have varying field counts;
// completely unparseable rows land in the rejection list.
func (p *Parser) ParseCSV(ctx context.Context, r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, row)
	}

	return p.parseRows(ctx, rows)
}

// column positions resolved for one input, -1 where a column is absent.
type layout struct {
	keyword  int
	url      int
	price    int
	salesA   int
	salesB   int
	date     int
	status   int
	category int

	periodALabel string
	periodBLabel string
	headerRows   int
}

// itemIDPattern extracts the numeric listing ID from eBay item URLs.
var itemIDPattern = regexp.MustCompile(`/itm/(\d+)`)

func (p *Parser) parseRows(ctx context.Context, rows [][]string) (*ParseResult, error) {
	result := &ParseResult{
		Records:  make([]domain.SalesRecord, 0, len(rows)),
		Rejected: make([]RejectedRow, 0),
	}
	if len(rows) == 0 {
		result.PeriodALabel, result.PeriodBLabel = "Period A", "Period B"
		return result, nil
	}

	lay := detectLayout(rows)
	result.PeriodALabel = lay.periodALabel
	result.PeriodBLabel = lay.periodBLabel
	result.HasPrice = lay.price >= 0
	result.HasCategory = lay.category >= 0

	minCols := lay.salesB + 1

	for i := lay.headerRows; i < len(rows); i++ {
		line := i + 1
		row := rows[i]

		if isBlankRow(row) {
			continue
		}
		if len(row) < minCols {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line, Reason: "too few columns", Raw: row,
			})
			continue
		}

		keyword := strings.TrimSpace(row[lay.keyword])
		url := cell(row, lay.url)
		if keyword == "" && url == "" {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line, Reason: "blank keyword and product url", Raw: row,
			})
			continue
		}
		if p.cfg.MarketplaceDomain != "" && !strings.Contains(url, p.cfg.MarketplaceDomain) {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line, Reason: fmt.Sprintf("product url does not contain %q", p.cfg.MarketplaceDomain), Raw: row,
			})
			continue
		}
		if p.cfg.MaxRows > 0 && len(result.Records) >= p.cfg.MaxRows {
			result.Rejected = append(result.Rejected, RejectedRow{
				Line: line, Reason: "row limit exceeded", Raw: row,
			})
			continue
		}

		rec := domain.SalesRecord{
			Keyword:      keyword,
			ProductURL:   url,
			PeriodASales: p.coerceSales(ctx, line, result.PeriodALabel, cell(row, lay.salesA)),
			PeriodBSales: p.coerceSales(ctx, line, result.PeriodBLabel, cell(row, lay.salesB)),
			DateChecked:  cell(row, lay.date),
			Status:       cell(row, lay.status),
			Category:     cell(row, lay.category),
		}
		if lay.price >= 0 {
			rec.Price, rec.PriceKnown = parsePrice(cell(row, lay.price))
		}
		if m := itemIDPattern.FindStringSubmatch(url); m != nil {
			rec.ItemID = m[1]
		}

		result.Records = append(result.Records, rec)
	}

	p.logger.InfoContext(ctx, "parsed sales export",
		slog.Int("rows", len(rows)),
		slog.Int("records", len(result.Records)),
		slog.Int("rejected", len(result.Rejected)),
		slog.Bool("has_price", result.HasPrice),
		slog.String("period_a", result.PeriodALabel),
		slog.String("period_b", result.PeriodBLabel))

	return result, nil
}

// detectLayout works out column positions. A first row whose leading cell
// mentions "keyword" or "product" is treated as a header and mapped by
// name; otherwise columns are positional, with the price column detected
// by sampling for currency markers the way the original export varies.
func detectLayout(rows [][]string) layout {
	lay := layout{
		keyword: 0, url: 1, price: -1, salesA: 2, salesB: 3,
		date: 4, status: 5, category: -1,
		periodALabel: "Period A", periodBLabel: "Period B",
	}

	first := rows[0]
	if len(first) > 0 && looksLikeHeader(first[0]) {
		lay.headerRows = 1
		mapHeader(first, &lay)
		return lay
	}

	if sampleHasPrices(rows) {
		lay.price = 2
		lay.salesA, lay.salesB = 3, 4
		lay.date, lay.status = 5, 6
	}
	return lay
}

// looksLikeHeader matches the contract's leading "Keyword" column. Product
// names could plausibly contain the word, but only in a data row that would
// then be missing its numeric columns anyway.
func looksLikeHeader(cell string) bool {
	return strings.Contains(strings.ToLower(cell), "keyword")
}

// mapHeader resolves columns by header name. The two sales columns are the
// first two headers containing "sales", in order; their labels become the
// period names.
func mapHeader(header []string, lay *layout) {
	lay.date, lay.status = -1, -1
	salesSeen := 0

	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(name, "sales"):
			label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(h), "Sales"))
			if salesSeen == 0 {
				lay.salesA = i
				if label != "" {
					lay.periodALabel = label
				}
			} else if salesSeen == 1 {
				lay.salesB = i
				if label != "" {
					lay.periodBLabel = label
				}
			}
			salesSeen++
		case strings.Contains(name, "url") || strings.Contains(name, "link"):
			lay.url = i
		case strings.Contains(name, "price"):
			lay.price = i
		case strings.Contains(name, "date"):
			lay.date = i
		case strings.Contains(name, "status"):
			lay.status = i
		case strings.Contains(name, "category"):
			lay.category = i
		case strings.Contains(name, "keyword") || strings.Contains(name, "product"):
			lay.keyword = i
		}
	}
}

// sampleHasPrices checks the first ten data rows for currency markers in
// column index 2, the position prices occupy in the priced export format.
func sampleHasPrices(rows [][]string) bool {
	hits := 0
	for i := 0; i < len(rows) && i < 10; i++ {
		if len(rows[i]) > 2 && strings.Contains(rows[i][2], "$") {
			hits++
		}
	}
	return hits >= 3
}

// coerceSales parses a sales count, stripping thousands separators.
// Non-numeric values coerce to zero with a logged warning rather than
// silently corrupting aggregates; negatives clamp to zero.
func (p *Parser) coerceSales(ctx context.Context, line int, column, raw string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if cleaned == "" {
		return 0
	}

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		p.logger.WarnContext(ctx, "non-numeric sales value coerced to zero",
			slog.Int("line", line),
			slog.String("column", column),
			slog.String("value", raw))
		return 0
	}
	if n < 0 {
		p.logger.WarnContext(ctx, "negative sales value clamped to zero",
			slog.Int("line", line),
			slog.String("column", column),
			slog.Int("value", n))
		return 0
	}
	return n
}

// parsePrice strips currency formatting and parses the remainder. The
// known flag is false for blank or unparseable cells and the "No price"
// marker the source scraper emits.
func parsePrice(raw string) (float64, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" || strings.EqualFold(cleaned, "no price") || strings.EqualFold(cleaned, "n/a") {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0, false
	}
	return value, true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
