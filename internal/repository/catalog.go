package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

var ErrCatalogUnavailable = errors.New("question catalog unavailable")

// catalogNamespace seeds identifiers derived for records published without one.
var catalogNamespace = uuid.MustParse("6f1c9a52-3d0e-4c55-9b8e-0a7c2f4d1e90")

// CatalogRepository fetches the full question catalog, either from a remote
// all.json or from a local file. Every fetch returns a freshly shuffled slice.
type CatalogRepository struct {
	url    string
	path   string
	client *http.Client
	rng    *rand.Rand
}

// NewHTTPCatalog creates a CatalogRepository reading the catalog from url.
func NewHTTPCatalog(url string, timeout time.Duration) *CatalogRepository {
	return &CatalogRepository{
		url:    url,
		client: &http.Client{Timeout: timeout},
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewFileCatalog creates a CatalogRepository reading the catalog from a local JSON file.
func NewFileCatalog(path string) *CatalogRepository {
	return &CatalogRepository{
		path: path,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fetch retrieves the whole catalog and shuffles it. An empty catalog is not
// an error; it yields an empty pool.
func (r *CatalogRepository) Fetch(ctx context.Context) ([]entities.Question, error) {
	questions, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	r.rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return questions, nil
}

// Load retrieves the whole catalog in publication order.
func (r *CatalogRepository) Load(ctx context.Context) ([]entities.Question, error) {
	var (
		questions []entities.Question
		err       error
	)

	if r.path != "" {
		questions, err = r.readFile()
	} else {
		questions, err = r.download(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	return questions, nil
}

// Location returns the URL or path the catalog is read from.
func (r *CatalogRepository) Location() string {
	if r.path != "" {
		return r.path
	}
	return r.url
}

func (r *CatalogRepository) download(ctx context.Context) ([]entities.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s: unexpected status %s", r.url, resp.Status)
	}

	return DecodeCatalog(resp.Body)
}

func (r *CatalogRepository) readFile() ([]entities.Question, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeCatalog(f)
}

// DecodeCatalog parses a JSON array of question records. Records published
// without an identifier get one derived from their label and prompt, so the
// same record keeps its identity across fetches.
func DecodeCatalog(r io.Reader) ([]entities.Question, error) {
	var questions []entities.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog JSON: %w", err)
	}

	for i := range questions {
		if questions[i].UUID == "" {
			questions[i].UUID = DeriveUUID(questions[i])
		}
	}

	return questions, nil
}

// DeriveUUID returns a name-based identifier for q.
func DeriveUUID(q entities.Question) string {
	return uuid.NewSHA1(catalogNamespace, []byte(q.Label()+"\n"+q.Question)).String()
}
