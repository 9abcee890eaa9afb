// Package server exposes registry queries as MCP tools over stdio.
package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// New creates an MCP server with the completion tools registered.
// Protocol translation lives in the handler.
func New(handler *MemberHandler) *server.MCPServer {
	s := server.NewMCPServer(
		"classview",
		Version,
		server.WithToolCapabilities(false),
	)

	suggestTool := mcp.NewTool("suggest_members",
		mcp.WithDescription("Suggests members of a JVM class whose names start with a prefix, as editor completion entries."),
		mcp.WithString("class",
			mcp.Required(),
			mcp.Description("Qualified class name, e.g. java.util.ArrayList or java.util.Map$Entry"),
		),
		mcp.WithString("prefix",
			mcp.Description("Name prefix typed so far. Empty lists all fields and methods."),
		),
		mcp.WithBoolean("inherited",
			mcp.Description("Include members inherited from superclasses and interfaces"),
		),
	)

	findTool := mcp.NewTool("find_member",
		mcp.WithDescription("Looks up a method or field of a JVM class by exact name."),
		mcp.WithString("class",
			mcp.Required(),
			mcp.Description("Qualified class name"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Exact member name"),
		),
		mcp.WithBoolean("field",
			mcp.Description("Look up a field instead of a method"),
		),
		mcp.WithBoolean("inherited",
			mcp.Description("For fields, also search superclasses and interfaces. Methods always search superclasses."),
		),
		mcp.WithArray("args",
			mcp.Description("Argument types for overload selection, e.g. [\"int\", \"java.lang.String[]\"]. \"?\" matches any type. When given, the first method whose parameters accept them is returned, searching interfaces too."),
			mcp.WithStringItems(),
		),
	)

	classesTool := mcp.NewTool("suggest_classes",
		mcp.WithDescription("Suggests classes on the classpath whose simple names start with a prefix, with the import each needs."),
		mcp.WithString("prefix",
			mcp.Description("Simple name prefix typed so far, e.g. Array"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of classes to return. 0 means no limit."),
			mcp.DefaultNumber(DefaultClassLimit),
		),
	)

	s.AddTool(suggestTool, handler.Suggest)
	s.AddTool(findTool, handler.Find)
	s.AddTool(classesTool, handler.SuggestClasses)

	return s
}
