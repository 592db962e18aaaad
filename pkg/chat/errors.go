package chat

import "errors"

// Erros devolvidos pelo SessionManager. Nenhum deles carrega o erro original do armazenamento.
var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrUnknownAssistant  = errors.New("unknown assistant")
	ErrStorageFailure    = errors.New("storage failure")
	ErrCompletionFailure = errors.New("assistant is unavailable")
	ErrInvalidMessage    = errors.New("invalid message")
)
