package server

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/javaide/classview/model"
)

// Entry is the JSON form of a completion item.
type Entry struct {
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
	Modifiers   string `json:"modifiers,omitempty"`
	Insert      string `json:"insert"`
	Replace     int    `json:"replace"`
	Import      string `json:"import,omitempty"`
}

// NewEntry renders item as accepted over the incomplete text.
func NewEntry(item model.Item, incomplete string) Entry {
	sel := model.Accept(item, incomplete)
	e := Entry{
		Label:       item.Label(),
		Kind:        item.Kind().String(),
		Description: item.Description(),
		Insert:      sel.Insert,
		Replace:     sel.Replace,
		Import:      sel.Import,
	}
	if m, ok := item.(interface{ Modifiers() model.Modifiers }); ok {
		e.Modifiers = m.Modifiers().String()
	}
	return e
}

// DefaultClassLimit caps suggest_classes when no limit is given.
const DefaultClassLimit = 50

// ClassLister enumerates the qualified names of available classes.
// classpath.Path implements it.
type ClassLister interface {
	Classes() iter.Seq[string]
}

// MemberHandler adapts MCP tool calls to registry queries.
type MemberHandler struct {
	registry *model.Registry
	classes  ClassLister
	logger   *slog.Logger
}

// NewMemberHandler creates a MemberHandler. A nil logger selects slog.Default.
func NewMemberHandler(registry *model.Registry, classes ClassLister, logger *slog.Logger) *MemberHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemberHandler{registry: registry, classes: classes, logger: logger}
}

// SuggestClasses handles suggest_classes.
func (h *MemberHandler) SuggestClasses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prefix := req.GetString("prefix", "")
	limit := req.GetInt("limit", DefaultClassLimit)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	items := h.registry.SuggestClasses(h.classes.Classes(), prefix, limit)
	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = NewEntry(it, prefix)
	}
	h.logger.Debug("suggest_classes", "prefix", prefix, "limit", limit, "count", len(entries))
	return jsonResult(entries)
}

// Suggest handles suggest_members.
func (h *MemberHandler) Suggest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	className, err := req.RequireString("class")
	if err != nil {
		return mcp.NewToolResultError("class is required"), nil
	}
	prefix := req.GetString("prefix", "")
	inherited := req.GetBool("inherited", false)

	class, err := h.registry.Resolve(className)
	if err != nil {
		return h.resolveError(className, err), nil
	}

	var items []model.Item
	if inherited {
		items = class.SuggestMembersInHierarchy(prefix)
	} else {
		items = class.SuggestMembers(prefix)
	}
	model.SortItems(items)

	entries := make([]Entry, len(items))
	for i, it := range items {
		entries[i] = NewEntry(it, prefix)
	}
	h.logger.Debug("suggest_members", "class", className, "prefix", prefix, "inherited", inherited, "count", len(entries))
	return jsonResult(entries)
}

// Find handles find_member.
func (h *MemberHandler) Find(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	className, err := req.RequireString("class")
	if err != nil {
		return mcp.NewToolResultError("class is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	wantField := req.GetBool("field", false)
	inherited := req.GetBool("inherited", false)
	_, overload := req.GetArguments()["args"]
	if overload && wantField {
		return mcp.NewToolResultError("args applies to methods only"), nil
	}

	class, err := h.registry.Resolve(className)
	if err != nil {
		return h.resolveError(className, err), nil
	}

	var (
		item  model.Item
		found bool
	)
	switch {
	case overload:
		args := model.ParseTypeRefs(req.GetStringSlice("args", nil))
		item, found = asItem(class.FindMethodOverload(name, args))
	case !wantField:
		item, found = asItem(class.FindMethod(name, nil))
	case inherited:
		item, found = asItem(class.FindFieldInHierarchy(name))
	default:
		item, found = asItem(class.FindField(name))
	}
	if !found {
		kind := model.KindMethod
		if wantField {
			kind = model.KindField
		}
		return mcp.NewToolResultError(fmt.Sprintf("no %s %q in %s", kind, name, className)), nil
	}
	return jsonResult(NewEntry(item, ""))
}

func (h *MemberHandler) resolveError(className string, err error) *mcp.CallToolResult {
	if model.IsNotFound(err) {
		return mcp.NewToolResultError(fmt.Sprintf("class %s not found on the classpath", className))
	}
	h.logger.Warn("failed to resolve class", "class", className, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("failed to resolve %s: %v", className, err))
}

func asItem[T model.Item](v T, ok bool) (model.Item, bool) {
	if !ok {
		return nil, false
	}
	return v, true
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
