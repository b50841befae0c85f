package jsonlite

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/peck/input"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "peck"

// LSPServer publishes jsonlite diagnostics over the language server
// protocol. Documents are parsed on open, change, and save; syntax errors
// and lint findings become diagnostics for the editor.
type LSPServer struct {
	handler protocol.Handler
	server  *server.Server
	log     commonlog.Logger
	version string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
		log:     commonlog.GetLogger(lsName),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.publish(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.publish(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.publish(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, string(data))
	return nil
}

// publish parses text and sends the resulting diagnostics for uri.
func (ls *LSPServer) publish(ctx *glsp.Context, uri string, text string) {
	name := uri
	if path, err := uriToPath(uri); err == nil {
		name = filepath.Base(path)
	}

	errs := Validate(text, WithSource(name))
	lines := newLineIndex(text)
	diags := make([]protocol.Diagnostic, 0, len(errs))
	for _, err := range errs {
		diags = append(diags, toDiagnostic(err, lines))
	}
	ls.log.Debug("publishing diagnostics", "uri", uri, "count", len(diags))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func toDiagnostic(err error, lines *lineIndex) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	message := err.Error()
	var rng protocol.Range

	var perr *Error
	if errors.As(err, &perr) {
		if perr.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}
		message = perr.Message
		rng = protocol.Range{
			Start: lines.position(perr.Span.Start),
			End:   lines.position(perr.Span.End),
		}
	}

	source := lsName
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// lineIndex maps byte offsets to zero-based lines and columns in UTF-16
// code units, the protocol's default position encoding.
type lineIndex struct {
	text   string
	starts []int
}

func newLineIndex(text string) *lineIndex {
	li := &lineIndex{text: text, starts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			li.starts = append(li.starts, i+1)
		}
	}
	return li
}

func (li *lineIndex) position(off input.Offset) protocol.Position {
	o := int(off)
	line := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > o }) - 1
	character := 0
	for _, r := range li.text[li.starts[line]:o] {
		character += utf16.RuneLen(r)
	}
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(character),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
