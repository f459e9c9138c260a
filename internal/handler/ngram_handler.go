package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeoMatosevic/ngram-context-analyzer/internal/batch"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/confusion"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/corpus"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngram"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/ngramerr"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/predictor"
	"github.com/TeoMatosevic/ngram-context-analyzer/internal/store"
)

// defaultAmount is the per-slot truncation default when the caller omits
// "amount" (spec.md §4.I).
const defaultAmount = 50

// NGramHandler implements the two Public API operations (spec.md §4.I)
// over the retrieval, scanning and prediction packages.
type NGramHandler struct {
	Session      *store.Session
	ConfusionSet corpus.ConfusionSet
	Counts       corpus.NGramCounts
	Distinct     corpus.DistinctNGramCounts
	RankingFunc  predictor.RankingFunc
	Logger       *zap.Logger
}

// Ready reports whether the handler's dependencies are usable.
func (h *NGramHandler) Ready() bool {
	return h.Session != nil
}

// checkTextRequest is the check-text request body.
type checkTextRequest struct {
	Text string `json:"text"`
}

// QueryNGram implements query-ngram(n, words, vary?, amount?) (spec.md
// §4.I).
func (h *NGramHandler) QueryNGram(c *gin.Context) {
	n, err := parseN(c)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	words := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		key := fmt.Sprintf("word%d", i)
		w := c.Query(key)
		if w == "" {
			respondError(c, h.Logger, fmt.Errorf("%w: missing %s", ngramerr.ErrMissingParameter, key))
			return
		}
		words = append(words, w)
	}

	input, err := ngram.New(words)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	varyParam := c.Query("vary")
	if varyParam == "" {
		result, err := ngram.GetOne(c.Request.Context(), h.Session, input)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}
		c.JSON(http.StatusOK, result)
		return
	}

	varyingIndexes, err := parseVaryingIndexes(varyParam)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	amount := defaultAmount
	if amountParam := c.Query("amount"); amountParam != "" {
		parsed, err := strconv.Atoi(amountParam)
		if err != nil {
			respondError(c, h.Logger, fmt.Errorf("%w: amount %q", ngramerr.ErrInvalidNumber, amountParam))
			return
		}
		amount = parsed
	}

	result, err := ngram.GetVarying(c.Request.Context(), h.Session, input, varyingIndexes, amount)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CheckText implements check-text(text) (spec.md §4.I).
func (h *NGramHandler) CheckText(c *gin.Context) {
	var req checkTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.Logger, fmt.Errorf("%w: %v", ngramerr.ErrBadRequestBody, err))
		return
	}

	contexts, occurrences := confusion.Scan(req.Text, h.ConfusionSet)

	tsr, err := batch.Execute(c.Request.Context(), h.Session, contexts, occurrences)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	predictions, err := predictor.Predict(tsr, h.ConfusionSet, h.Counts, h.Distinct, h.RankingFunc)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}

func parseN(c *gin.Context) (int, error) {
	nParam := c.Query("n")
	if nParam == "" {
		return 0, fmt.Errorf("%w: missing n", ngramerr.ErrMissingParameter)
	}
	n, err := strconv.Atoi(nParam)
	if err != nil {
		return 0, fmt.Errorf("%w: n %q", ngramerr.ErrInvalidNumber, nParam)
	}
	if n != 2 && n != 3 {
		return 0, fmt.Errorf("%w: n=%d", ngramerr.ErrUnsupportedN, n)
	}
	return n, nil
}

func parseVaryingIndexes(vary string) ([]int, error) {
	parts := strings.Split(vary, ",")
	indexes := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: vary %q", ngramerr.ErrInvalidIndex, vary)
		}
		indexes = append(indexes, idx)
	}
	return indexes, nil
}

// respondError maps internal error kinds to HTTP status codes at the
// handler boundary only (spec.md §7). 4xx responses carry the validation
// message verbatim; 5xx responses never leak the internal error string.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if ngramerr.IsBadRequest(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ngramerr.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ngramerr.ErrExecuteFailed):
		status = http.StatusBadGateway
	}

	logger.Error("request failed",
		zap.Error(err),
		zap.Any("request_id", c.MustGet("request_id")),
	)
	c.JSON(status, gin.H{"error": "internal server error"})
}
