package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/chain"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/signature"
)

// MaxLimit bounds the page size of block listings.
const MaxLimit = 1000

// ChainHandler serves read access to stored chains and ad-hoc block validation.
type ChainHandler struct {
	store     ChainReader
	validator Validator
	logger    *zap.Logger
	marshaler runtime.Marshaler
}

func NewChainHandler(store ChainReader, validator Validator, logger *zap.Logger) (*ChainHandler, error) {
	if store == nil {
		return nil, errors.New("chain handler store is required")
	}
	if validator == nil {
		return nil, errors.New("chain handler validator is required")
	}
	return &ChainHandler{
		store:     store,
		validator: validator,
		logger:    logger.Named("chainHandler"),
		marshaler: &runtime.JSONBuiltin{},
	}, nil
}

// LatestBlock answers GET /v1/chains/{public_key}/latest.
func (h *ChainHandler) LatestBlock(w http.ResponseWriter, r *http.Request, params map[string]string) {
	pk, err := publicKeyParam(params)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	b, err := h.store.LatestBlock(r.Context(), pk)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if b == nil {
		h.fail(w, http.StatusNotFound, errors.New("chain not found"))
		return
	}
	h.respond(w, http.StatusOK, newBlockView(b))
}

// Blocks answers GET /v1/chains/{public_key}/blocks. With until the listing is descending from
// until, otherwise ascending from since.
func (h *ChainHandler) Blocks(w http.ResponseWriter, r *http.Request, params map[string]string) {
	pk, err := publicKeyParam(params)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	query := r.URL.Query()
	limit := chain.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > MaxLimit {
			h.fail(w, http.StatusBadRequest, fmt.Errorf("limit must be between 1 and %d", MaxLimit))
			return
		}
	}

	var blocks []*block.Block
	if raw := query.Get("until"); raw != "" {
		until, parseErr := parseSequence("until", raw)
		if parseErr != nil {
			h.fail(w, http.StatusBadRequest, parseErr)
			return
		}
		blocks, err = h.store.BlocksUntil(r.Context(), pk, until, limit)
	} else {
		var since uint32
		if raw := query.Get("since"); raw != "" {
			since, err = parseSequence("since", raw)
			if err != nil {
				h.fail(w, http.StatusBadRequest, err)
				return
			}
		}
		blocks, err = h.store.BlocksSince(r.Context(), pk, since, limit)
	}
	if err != nil {
		h.internal(w, r, err)
		return
	}
	h.respond(w, http.StatusOK, newBlocksView(blocks))
}

// Block answers GET /v1/chains/{public_key}/blocks/{sequence_number}.
func (h *ChainHandler) Block(w http.ResponseWriter, r *http.Request, params map[string]string) {
	b, ok := h.lookup(w, r, params)
	if !ok {
		return
	}
	h.respond(w, http.StatusOK, newBlockView(b))
}

// HasBlock answers HEAD /v1/chains/{public_key}/blocks/{sequence_number}.
func (h *ChainHandler) HasBlock(w http.ResponseWriter, r *http.Request, params map[string]string) {
	pk, seq, err := positionParams(params)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ok, err := h.store.Contains(r.Context(), pk, seq)
	switch {
	case err != nil:
		h.logger.Error("contains lookup failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	case !ok:
		w.WriteHeader(http.StatusNotFound)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

// LinkedBlock answers GET /v1/chains/{public_key}/blocks/{sequence_number}/linked.
func (h *ChainHandler) LinkedBlock(w http.ResponseWriter, r *http.Request, params map[string]string) {
	b, ok := h.lookup(w, r, params)
	if !ok {
		return
	}

	linked, err := h.store.LinkedBlock(r.Context(), b)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	if linked == nil {
		h.fail(w, http.StatusNotFound, errors.New("linked block not found"))
		return
	}
	h.respond(w, http.StatusOK, newBlockView(linked))
}

// Validate answers POST /v1/validate with the verdict for a packed block in the request body.
// The block is not stored.
func (h *ChainHandler) Validate(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, block.Size+1))
	if err != nil {
		h.fail(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	b, err := block.Unpack(payload)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}

	view := ValidationView{Block: newBlockView(b)}
	if err := signature.VerifyBlock(b); err != nil {
		h.respond(w, http.StatusOK, view)
		return
	}
	view.SignatureValid = true

	result, err := h.validator.Validate(r.Context(), b)
	if err != nil {
		h.internal(w, r, err)
		return
	}
	view.Verdict = result.Verdict
	view.Violations = result.Violations
	if result.Linked != nil {
		linked := newBlockView(result.Linked)
		view.Linked = &linked
	}
	h.respond(w, http.StatusOK, view)
}

func (h *ChainHandler) lookup(w http.ResponseWriter, r *http.Request, params map[string]string) (*block.Block, bool) {
	pk, seq, err := positionParams(params)
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return nil, false
	}

	b, err := h.store.Block(r.Context(), pk, seq)
	if err != nil {
		h.internal(w, r, err)
		return nil, false
	}
	if b == nil {
		h.fail(w, http.StatusNotFound, errors.New("block not found"))
		return nil, false
	}
	return b, true
}

func (h *ChainHandler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	w.WriteHeader(status)
	if err := h.marshaler.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("write response failed", zap.Error(err))
	}
}

func (h *ChainHandler) fail(w http.ResponseWriter, status int, err error) {
	h.respond(w, status, errorView{Error: err.Error()})
}

func (h *ChainHandler) internal(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	h.fail(w, http.StatusInternalServerError, errors.New("internal error"))
}

func publicKeyParam(params map[string]string) (block.PublicKey, error) {
	pk, err := block.ParsePublicKeyString(params["public_key"])
	if err != nil {
		return block.PublicKey{}, fmt.Errorf("invalid public key: %w", err)
	}
	return pk, nil
}

func positionParams(params map[string]string) (block.PublicKey, uint32, error) {
	pk, err := publicKeyParam(params)
	if err != nil {
		return pk, 0, err
	}
	seq, err := parseSequence("sequence number", params["sequence_number"])
	if err != nil {
		return pk, 0, err
	}
	return pk, seq, nil
}

func parseSequence(name, raw string) (uint32, error) {
	seq, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return uint32(seq), nil
}
