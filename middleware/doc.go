// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers.

# Request Logging

WithLogging wraps a handler and logs start/completion with duration:

	mux.HandleFunc("POST /votes", middleware.WithLogging(h.Submit))

# JSON Helpers

JSONResponse and ErrorResponse write consistent JSON bodies;
ParseJSONBody decodes a request body:

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

Errors always use the shape {"error": "...", "message": "..."}.

# CORS

CORS allows cross-origin requests from the form/dashboard frontends and
answers OPTIONS preflights.
*/
package middleware
