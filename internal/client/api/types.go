package api

// response is the generic success envelope the server wraps payloads in.
type response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   *Error `json:"error"`
}

// AuthResponse is the body of a successful password grant or token refresh.
// On desktop clients the token fields are empty and cookies carry the pair.
type AuthResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// RegisteredUser is the account record returned on successful sign-up,
// together with an optional token pair when verification is not required.
type RegisteredUser struct {
	ID                   string `json:"id"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	IsVerified           bool   `json:"is_verified"`
	RequiresVerification bool   `json:"requires_verification"`
	AccessToken          string `json:"access_token"`
	RefreshToken         string `json:"refresh_token"`
}

// Workspace is a single workspace record.
type Workspace struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
	IsPublic    bool   `json:"is_public"`
}

// WorkspacePage is one page of a workspace listing.
type WorkspacePage struct {
	Items []Workspace `json:"items"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// CreateWorkspaceRequest creates a new workspace.
type CreateWorkspaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsPublic    bool   `json:"is_public"`
}

// Chat is an AI chat session record.
type Chat struct {
	ID          string `json:"id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OwnerID     string `json:"owner_id"`
}

// ChatUpdate carries the mutable chat fields. Nil fields are left unchanged.
type ChatUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ChatMessage is a single entry of a chat transcript.
type ChatMessage struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// ChatStats aggregates usage counters across the account's chats.
type ChatStats struct {
	TotalChats    int `json:"total_chats"`
	TotalMessages int `json:"total_messages"`
	TotalTokens   int `json:"total_tokens"`
}

// CompletionResult is the model response for one completion request.
type CompletionResult struct {
	Result struct {
		Alternatives []struct {
			Message struct {
				Role string `json:"role"`
				Text string `json:"text"`
			} `json:"message"`
			Status string `json:"status"`
		} `json:"alternatives"`
		Usage struct {
			InputTextTokens  string `json:"inputTextTokens"`
			CompletionTokens string `json:"completionTokens"`
			TotalTokens      string `json:"totalTokens"`
		} `json:"usage"`
		ModelVersion string `json:"modelVersion"`
	} `json:"result"`
}

// Text returns the first alternative's message text, or "" when the model
// produced none.
func (r *CompletionResult) Text() string {
	if len(r.Result.Alternatives) == 0 {
		return ""
	}
	return r.Result.Alternatives[0].Message.Text
}
