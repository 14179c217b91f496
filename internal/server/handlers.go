// Copyright (c) 2025 suprsokr
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	wdb "github.com/suprsokr/go-wdb"
)

// Handler serves the Crystarium held by a Store.
type Handler struct {
	store     *wdb.Store
	logger    *slog.Logger
	maxUpload int64
	opts      []wdb.Option
}

// NewHandler returns a Handler. Uploads larger than maxUpload bytes are
// rejected and opts are passed to every decode.
func NewHandler(store *wdb.Store, logger *slog.Logger, maxUpload int64, opts ...wdb.Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:     store,
		logger:    logger,
		maxUpload: maxUpload,
		opts:      opts,
	}
}

type pageSummary struct {
	Number    int    `json:"number"`
	Stage     int16  `json:"stage"`
	Role      string `json:"role"`
	NodeCount int    `json:"node_count"`
}

type pageResponse struct {
	Number int            `json:"number"`
	Total  int            `json:"total"`
	Prev   int            `json:"prev,omitempty"`
	Next   int            `json:"next,omitempty"`
	Stage  int16          `json:"stage"`
	Role   string         `json:"role"`
	Nodes  []wdb.NodeView `json:"nodes"`
}

type entryResponse struct {
	Name   string `json:"name"`
	Offset int32  `json:"offset"`
	Length int32  `json:"length"`
}

// Upload decodes the multipart "file" field and makes it the current
// Crystarium. A file that fails to decode leaves the previous one in place.
func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if fh.Size > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.logger.Error("open upload", "error", err, "filename", fh.Filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUpload+1))
	if err != nil {
		h.logger.Error("read upload", "error", err, "filename", fh.Filename)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	if int64(len(data)) > h.maxUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	handle, err := h.store.Load(data, h.opts...)
	if err != nil {
		code := wdb.Classify(err)
		h.logger.Warn("decode upload", "error", err, "code", code, "filename", fh.Filename)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "code": code})
		return
	}

	pages, err := h.store.Pages(handle)
	if err != nil {
		// Another upload replaced this one already.
		h.writeStoreError(c, err)
		return
	}
	nodes := 0
	for _, p := range pages {
		nodes += len(p.Nodes)
	}

	h.logger.Info("crystarium loaded",
		"filename", fh.Filename,
		"id", handle.ID.String(),
		"generation", handle.Generation,
		"nodes", nodes,
		"pages", len(pages))

	c.JSON(http.StatusCreated, gin.H{
		"id":         handle.ID.String(),
		"generation": handle.Generation,
		"nodes":      nodes,
		"pages":      len(pages),
	})
}

// Directory describes the header and entry table of the current file.
func (h *Handler) Directory(c *gin.Context) {
	handle, crystarium, ok := h.store.Current()
	if !ok {
		h.writeStoreError(c, wdb.ErrNoData)
		return
	}

	dir := crystarium.Directory
	if dir == nil {
		dir = &wdb.Directory{}
	}
	entries := make([]entryResponse, len(dir.Entries))
	for i, e := range dir.Entries {
		entries[i] = entryResponse{Name: e.Name, Offset: e.Offset, Length: e.Length}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      handle.ID.String(),
		"magic":   dir.Magic,
		"count":   dir.Count,
		"version": dir.Version,
		"strings": len(dir.Strings),
		"entries": entries,
	})
}

// Nodes lists every node, optionally only those of ?character=.
func (h *Handler) Nodes(c *gin.Context) {
	_, crystarium, ok := h.store.Current()
	if !ok {
		h.writeStoreError(c, wdb.ErrNoData)
		return
	}

	nodes := crystarium.Nodes
	if character := c.Query("character"); character != "" {
		nodes = crystarium.ByCharacter(character)
	}
	c.JSON(http.StatusOK, wdb.Views(nodes))
}

// Pages lists the stage/role pages of the current Crystarium.
func (h *Handler) Pages(c *gin.Context) {
	_, pages, err := h.store.CurrentPages()
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	summaries := make([]pageSummary, len(pages))
	for i, p := range pages {
		summaries[i] = pageSummary{Number: i + 1, Stage: p.Stage, Role: p.Role, NodeCount: len(p.Nodes)}
	}
	c.JSON(http.StatusOK, summaries)
}

// Page returns one page, counted from 1, with its prev/next numbers.
func (h *Handler) Page(c *gin.Context) {
	n, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page number"})
		return
	}

	_, pages, err := h.store.CurrentPages()
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	page, err := wdb.NewPager(pages).Page(n)
	if err != nil {
		h.writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, pageResponse{
		Number: page.Number,
		Total:  page.Total,
		Prev:   page.Prev,
		Next:   page.Next,
		Stage:  page.Group.Stage,
		Role:   page.Group.Role,
		Nodes:  wdb.Views(page.Group.Nodes),
	})
}

func (h *Handler) writeStoreError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, wdb.ErrNoData):
		status = http.StatusConflict
	case errors.Is(err, wdb.ErrStaleHandle):
		status = http.StatusConflict
	case errors.Is(err, wdb.ErrPageOutOfRange):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": wdb.Classify(err)})
}
