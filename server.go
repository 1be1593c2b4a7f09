package main

import (
	"net/http"
	"strconv"

	"gorange/ranges"
	"gorange/trees/segment"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type handler struct {
	tree   *segment.SegmentTree[int64]
	logger *zap.Logger
}

func newRouter(tree *segment.SegmentTree[int64], logger *zap.Logger) *gin.Engine {
	h := &handler{
		tree:   tree,
		logger: logger,
	}

	ginEngine := gin.Default()
	ginEngine.GET("/segment", h.Segment)
	ginEngine.GET("/describe", h.Describe)
	return ginEngine
}

// parseQuery reads lRange, rRange and the optional exclusion flags.
func parseQuery(ginC *gin.Context) (ranges.Range[int64], error) {
	var q ranges.Range[int64]

	l, err := strconv.ParseInt(ginC.Query("lRange"), 10, 64)
	if err != nil {
		return q, errors.Wrap(err, "lRange")
	}

	r, err := strconv.ParseInt(ginC.Query("rRange"), 10, 64)
	if err != nil {
		return q, errors.Wrap(err, "rRange")
	}

	var opts ranges.Options
	if v := ginC.Query("excludeBegin"); v != "" {
		if opts.ExcludeBegin, err = strconv.ParseBool(v); err != nil {
			return q, errors.Wrap(err, "excludeBegin")
		}
	}
	if v := ginC.Query("excludeEnd"); v != "" {
		if opts.ExcludeEnd, err = strconv.ParseBool(v); err != nil {
			return q, errors.Wrap(err, "excludeEnd")
		}
	}

	return ranges.NewWithOptions(l, r, opts), nil
}

func (h *handler) Segment(ginC *gin.Context) {
	q, err := parseQuery(ginC)
	if err != nil {
		ginC.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := ginC.Request.Context()
	res, err := h.tree.Get(ctx, q)
	if err != nil {
		h.logger.Error("segment query failed", zap.Stringer("range", q), zap.Error(err))
		ginC.JSON(http.StatusInternalServerError, gin.H{"error": "segment query failed"})
		return
	}

	var data interface{} = int64(0)
	if res.Data != nil {
		if data, err = res.Data.Get(ctx); err != nil {
			h.logger.Error("read segment data", zap.Stringer("range", q), zap.Error(err))
			ginC.JSON(http.StatusInternalServerError, gin.H{"error": "segment query failed"})
			return
		}
	}

	h.logger.Debug("segment query",
		zap.Stringer("range", q),
		zap.Int("hits", res.CacheHits),
		zap.Int("misses", res.CacheMisses),
	)

	result := make(map[string]interface{})
	result["Range"] = q.String()
	result["Cache Hits"] = res.CacheHits
	result["Cache Miss"] = res.CacheMisses
	result["Result"] = data

	ginC.JSON(http.StatusOK, result)
}

func (h *handler) Describe(ginC *gin.Context) {
	ginC.JSON(http.StatusOK, h.tree.Describe())
}
