package recommend

import (
	"bytes"
	"embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

//go:embed data/association_rules.json data/popularity.csv
var embeddedTables embed.FS

// Rule is one association-table entry: buying the key product makes
// Product a candidate with the given confidence.
type Rule struct {
	Product  string  `json:"product"`
	Category string  `json:"product_category"`
	Conf     float64 `json:"confidence"`
}

// PopularityRow is one row of the popularity table.
type PopularityRow struct {
	Product      string
	Category     string
	Transactions int
}

// Tables holds the static recommendation data, loaded once at startup
// and read-only for the process lifetime.
type Tables struct {
	assoc      map[string][]Rule
	popularity []PopularityRow
	products   []string
	categories []string
}

// Load reads the association-rule and popularity tables. Empty paths
// fall back to the embedded defaults.
func Load(assocPath, popularityPath string) (*Tables, error) {
	assocData, err := readSource(assocPath, "data/association_rules.json")
	if err != nil {
		return nil, fmt.Errorf("read association rules: %w", err)
	}

	var assoc map[string][]Rule
	if err := json.Unmarshal(assocData, &assoc); err != nil {
		return nil, fmt.Errorf("parse association rules: %w", err)
	}

	popData, err := readSource(popularityPath, "data/popularity.csv")
	if err != nil {
		return nil, fmt.Errorf("read popularity table: %w", err)
	}

	popularity, err := parsePopularity(popData)
	if err != nil {
		return nil, fmt.Errorf("parse popularity table: %w", err)
	}

	t := &Tables{assoc: assoc, popularity: popularity}
	seen := make(map[string]bool)
	for _, row := range popularity {
		t.products = append(t.products, row.Product)
		if !seen[row.Category] {
			seen[row.Category] = true
			t.categories = append(t.categories, row.Category)
		}
	}
	return t, nil
}

func readSource(path, embeddedName string) ([]byte, error) {
	if path == "" {
		return embeddedTables.ReadFile(embeddedName)
	}
	return os.ReadFile(path)
}

func parsePopularity(data []byte) ([]PopularityRow, error) {
	r := csv.NewReader(bytes.NewReader(data))
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"product", "product_category", "number_of_transactions"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []PopularityRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(record[col["number_of_transactions"]])
		if err != nil {
			return nil, fmt.Errorf("row %q: %w", record[col["product"]], err)
		}
		rows = append(rows, PopularityRow{
			Product:      record[col["product"]],
			Category:     record[col["product_category"]],
			Transactions: n,
		})
	}
	return rows, nil
}

// Products lists every product in the popularity table, in table order.
func (t *Tables) Products() []string {
	return t.products
}

// Categories lists the distinct product categories, in first-seen order.
func (t *Tables) Categories() []string {
	return t.categories
}
