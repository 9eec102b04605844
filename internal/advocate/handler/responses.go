package handler

import "advocatehub/pkg/platform/httputil"

// FetchFailedMessage is the only error text the list endpoint exposes.
const FetchFailedMessage = "Failed to fetch advocates"

var fetchFailedResponse = httputil.ErrorResponse{Error: FetchFailedMessage}
