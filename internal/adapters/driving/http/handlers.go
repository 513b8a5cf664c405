package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// VersionResponse represents the API version response
// @Description API version response
type VersionResponse struct {
	Version string `json:"version" example:"1.0.0"`
}

// AddMemberRequest is the payload for adding a member to a space
// @Description Space membership request
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns the readiness status of the API (checks database and queue connections)
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A dependency is unavailable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "task queue unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Description  Returns the current API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  VersionResponse
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleRegister godoc
// @Summary      Register account
// @Description  Create a new account and receive a session token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RegisterRequest  true  "Account details"
// @Success      201      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      409      {object}  ErrorResponse  "Email already registered"
// @Router       /auth/register [post]
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, password, and name are required")
		case errors.Is(err, domain.ErrAlreadyExists):
			writeError(w, http.StatusConflict, "email already registered")
		default:
			writeError(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password to receive a JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials or account disabled"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, domain.ErrUnauthorized):
			writeError(w, http.StatusUnauthorized, "account disabled")
		default:
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRefresh godoc
// @Summary      Refresh token
// @Description  Exchange a refresh token for a new JWT token
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.RefreshRequest  true  "Refresh token"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req domain.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.authService.RefreshToken(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Invalidate the current session
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx != nil {
		_ = s.authService.Logout(r.Context(), authCtx.SessionID)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Description  Get the currently authenticated user's profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())
	if authCtx == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := s.userService.Get(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handleListUsers godoc
// @Summary      List all users
// @Description  Get a list of all users (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Router       /users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// handleDeleteUser godoc
// @Summary      Delete user
// @Description  Delete a user by ID (admin only)
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  StatusResponse
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Forbidden - admin only"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /users/{id} [delete]
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Space endpoints

// handleCreateSpace godoc
// @Summary      Create space
// @Description  Create a study space owned by the current user
// @Tags         Spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      domain.CreateSpaceRequest  true  "Space details"
// @Success      201      {object}  domain.Space
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Router       /spaces [post]
func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	space, err := s.spaceService.Create(r.Context(), authCtx.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, space)
}

// handleListSpaces godoc
// @Summary      List spaces
// @Description  List spaces the current user owns or is a member of
// @Tags         Spaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Space
// @Router       /spaces [get]
func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	spaces, err := s.spaceService.List(r.Context(), authCtx.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list spaces")
		return
	}

	writeJSON(w, http.StatusOK, spaces)
}

// handleGetSpace godoc
// @Summary      Get space
// @Description  Get a space the current user can access
// @Tags         Spaces
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Space ID"
// @Success      200  {object}  domain.Space
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Space not found"
// @Router       /spaces/{id} [get]
func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	space, err := s.spaceService.Get(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, space)
}

// handleUpdateSpace godoc
// @Summary      Update space
// @Description  Update a space the current user can access
// @Tags         Spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Space ID"
// @Param        request  body      domain.UpdateSpaceRequest  true  "Fields to update"
// @Success      200      {object}  domain.Space
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Not a member"
// @Failure      404      {object}  ErrorResponse  "Space not found"
// @Router       /spaces/{id} [put]
func (s *Server) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.UpdateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	space, err := s.spaceService.Update(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, space)
}

// handleDeleteSpace godoc
// @Summary      Delete space
// @Description  Delete a space the current user owns
// @Tags         Spaces
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Space ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse  "Owner only"
// @Failure      404  {object}  ErrorResponse  "Space not found"
// @Router       /spaces/{id} [delete]
func (s *Server) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	if err := s.spaceService.Delete(r.Context(), authCtx.UserID, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleAddMember godoc
// @Summary      Add member
// @Description  Add a member to a space the current user owns
// @Tags         Spaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Space ID"
// @Param        request  body      AddMemberRequest  true  "Member to add"
// @Success      200      {object}  StatusResponse
// @Failure      403      {object}  ErrorResponse  "Owner only"
// @Failure      404      {object}  ErrorResponse  "Space or user not found"
// @Failure      409      {object}  ErrorResponse  "Already a member"
// @Router       /spaces/{id}/members [post]
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if err := s.spaceService.AddMember(r.Context(), authCtx.UserID, r.PathValue("id"), req.UserID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "added"})
}

// handleRemoveMember godoc
// @Summary      Remove member
// @Description  Remove a member from a space the current user owns
// @Tags         Spaces
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true  "Space ID"
// @Param        userID  path      string  true  "Member user ID"
// @Success      200     {object}  StatusResponse
// @Failure      403     {object}  ErrorResponse  "Owner only"
// @Failure      404     {object}  ErrorResponse  "Space or member not found"
// @Router       /spaces/{id}/members/{userID} [delete]
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	err := s.spaceService.RemoveMember(r.Context(), authCtx.UserID, r.PathValue("id"), r.PathValue("userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// Subject endpoints

// handleCreateSubject godoc
// @Summary      Create subject
// @Description  Create a subject in a space the current user can access
// @Tags         Subjects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                      true  "Space ID"
// @Param        request  body      domain.CreateSubjectRequest true  "Subject details"
// @Success      201      {object}  domain.Subject
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Not a member"
// @Failure      404      {object}  ErrorResponse  "Space not found"
// @Router       /spaces/{id}/subjects [post]
func (s *Server) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.CreateSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	subject, err := s.subjectService.Create(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, subject)
}

// handleListSubjects godoc
// @Summary      List subjects
// @Description  List subjects in a space the current user can access
// @Tags         Subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Space ID"
// @Success      200  {array}  domain.Subject
// @Failure      403  {object} ErrorResponse  "Not a member"
// @Failure      404  {object} ErrorResponse  "Space not found"
// @Router       /spaces/{id}/subjects [get]
func (s *Server) handleListSubjects(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	subjects, err := s.subjectService.ListBySpace(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subjects)
}

// handleGetSubject godoc
// @Summary      Get subject
// @Description  Get a subject the current user can access
// @Tags         Subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subject ID"
// @Success      200  {object}  domain.Subject
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Subject not found"
// @Router       /subjects/{id} [get]
func (s *Server) handleGetSubject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	subject, err := s.subjectService.Get(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, subject)
}

// handleDeleteSubject godoc
// @Summary      Delete subject
// @Description  Delete a subject from a space the current user can access
// @Tags         Subjects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Subject ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Subject not found"
// @Router       /subjects/{id} [delete]
func (s *Server) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	if err := s.subjectService.Delete(r.Context(), authCtx.UserID, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Material endpoints

// handleCreateMaterial godoc
// @Summary      Add material
// @Description  Add study material to a subject and queue note generation
// @Tags         Materials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Subject ID"
// @Param        request  body      domain.CreateMaterialRequest true  "Material details"
// @Success      202      {object}  domain.Material
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      403      {object}  ErrorResponse  "Not a member"
// @Failure      404      {object}  ErrorResponse  "Subject not found"
// @Router       /subjects/{id}/materials [post]
func (s *Server) handleCreateMaterial(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	material, err := s.materialService.Create(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Note generation runs in the background; the material starts out pending
	writeJSON(w, http.StatusAccepted, material)
}

// handleListMaterials godoc
// @Summary      List materials
// @Description  List materials for a subject the current user can access
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Subject ID"
// @Success      200  {array}  domain.Material
// @Failure      403  {object} ErrorResponse  "Not a member"
// @Failure      404  {object} ErrorResponse  "Subject not found"
// @Router       /subjects/{id}/materials [get]
func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	materials, err := s.materialService.ListBySubject(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, materials)
}

// handleGetMaterial godoc
// @Summary      Get material
// @Description  Get a material and its processing status
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Material ID"
// @Success      200  {object}  domain.Material
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Material not found"
// @Router       /materials/{id} [get]
func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	material, err := s.materialService.Get(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, material)
}

// handleDeleteMaterial godoc
// @Summary      Delete material
// @Description  Delete a material and its generated note
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Material ID"
// @Success      200  {object}  StatusResponse
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Material not found"
// @Router       /materials/{id} [delete]
func (s *Server) handleDeleteMaterial(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	if err := s.materialService.Delete(r.Context(), authCtx.UserID, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleRegenerateMaterial godoc
// @Summary      Regenerate notes
// @Description  Re-queue note generation for a material
// @Tags         Materials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Material ID"
// @Success      202  {object}  domain.Material
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Material not found"
// @Failure      409  {object}  ErrorResponse  "Already processing"
// @Router       /materials/{id}/regenerate [post]
func (s *Server) handleRegenerateMaterial(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	material, err := s.materialService.Regenerate(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "material is already being processed")
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, material)
}

// Note endpoints

// handleListNotes godoc
// @Summary      List notes
// @Description  List generated notes for a subject the current user can access
// @Tags         Notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path     string  true  "Subject ID"
// @Success      200  {array}  domain.Note
// @Failure      403  {object} ErrorResponse  "Not a member"
// @Failure      404  {object} ErrorResponse  "Subject not found"
// @Router       /subjects/{id}/notes [get]
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	notes, err := s.noteService.ListBySubject(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// handleGetNote godoc
// @Summary      Get note
// @Description  Get a generated note by ID
// @Tags         Notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  domain.Note
// @Failure      403  {object}  ErrorResponse  "Not a member"
// @Failure      404  {object}  ErrorResponse  "Note not found"
// @Router       /notes/{id} [get]
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	note, err := s.noteService.Get(r.Context(), authCtx.UserID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Chat endpoint

// handleChat godoc
// @Summary      Ask about a subject
// @Description  Ask a question answered from the subject's generated notes
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Subject ID"
// @Param        request  body      domain.ChatRequest true  "Question"
// @Success      200      {object}  domain.ChatResponse
// @Failure      400      {object}  ErrorResponse  "Empty question"
// @Failure      403      {object}  ErrorResponse  "Not a member"
// @Failure      404      {object}  ErrorResponse  "Subject not found"
// @Failure      503      {object}  ErrorResponse  "AI service unavailable"
// @Router       /subjects/{id}/chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	authCtx := GetAuthContext(r.Context())

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.chatService.Ask(r.Context(), authCtx.UserID, r.PathValue("id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps domain sentinel errors onto HTTP status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrServiceUnavailable):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
