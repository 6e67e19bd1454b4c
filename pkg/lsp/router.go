package lsp

import "github.com/zolo-lang/go/pkg/lsp/log"

// route dispatches a request to the appropriate handler. Lifecycle and
// document sync methods mutate server state; language feature methods
// only read the current parse result of the target document.
func (s *Server) route(req Request) (any, *Error) {
	switch req.Method {
	// Lifecycle
	case "initialize":
		return s.handleInitialize(req.Params)
	case "initialized":
		return s.handleInitialized()
	case "shutdown":
		return s.handleShutdown()
	case "exit":
		s.handleExit()
		return nil, nil

	// Document synchronization
	case "textDocument/didOpen":
		return s.handleDidOpen(req.Params)
	case "textDocument/didChange":
		return s.handleDidChange(req.Params)
	case "textDocument/didClose":
		return s.handleDidClose(req.Params)
	case "textDocument/didSave":
		return s.handleDidSave(req.Params)

	// Language features
	case "textDocument/hover":
		return s.handleHover(req.Params)
	case "textDocument/completion":
		return s.handleCompletion(req.Params)
	case "textDocument/semanticTokens/full":
		return s.handleSemanticTokensFull(req.Params)

	default:
		log.Server("Unknown method: %s", req.Method)
		return nil, &Error{Code: CodeMethodNotFound, Message: "Method not found: " + req.Method}
	}
}
