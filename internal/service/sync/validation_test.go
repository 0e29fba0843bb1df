package sync

import (
	"errors"
	"strings"
	"testing"

	"forgesync/internal/config"
	"forgesync/internal/domain"
	"forgesync/internal/domain/models"
)

func TestCheckPushRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.PushRequest
		wantErr string
	}{
		{
			name:    "nil request",
			req:     nil,
			wantErr: "request body is required",
		},
		{
			name:    "missing project name",
			req:     &models.PushRequest{},
			wantErr: "projectName is required",
		},
		{
			name: "project name too long",
			req: &models.PushRequest{
				ProjectName: strings.Repeat("x", config.MaxProjectNameLength+1),
			},
			wantErr: "projectName exceeds maximum length",
		},
		{
			name: "too many branches",
			req: &models.PushRequest{
				ProjectName: "p",
				Branches:    make([]models.Branch, config.MaxBatchItems+1),
			},
			wantErr: "branches exceeds maximum",
		},
		{
			name: "too many folders",
			req: &models.PushRequest{
				ProjectName: "p",
				Folders:     make([]models.SyncFolder, config.MaxBatchItems+1),
			},
			wantErr: "folders exceeds maximum",
		},
		{
			name: "valid",
			req: &models.PushRequest{
				ProjectName: "My Project",
				Branches:    []models.Branch{{ID: "b1"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPushRequest(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CheckPushRequest: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckPushRequest accepted an invalid request")
			}
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCheckCreateMappingRequest(t *testing.T) {
	valid := func() *models.CreateMappingRequest {
		return &models.CreateMappingRequest{
			ThinkForgeFolderID:   "f1",
			ThinkForgeFolderName: "Research",
			ObsidianPath:         "Notes/Research",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*models.CreateMappingRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(r *models.CreateMappingRequest) {}},
		{
			name:    "missing folder id",
			mutate:  func(r *models.CreateMappingRequest) { r.ThinkForgeFolderID = "" },
			wantErr: "thinkForgeFolderId is required",
		},
		{
			name:    "missing folder name",
			mutate:  func(r *models.CreateMappingRequest) { r.ThinkForgeFolderName = "" },
			wantErr: "thinkForgeFolderName is required",
		},
		{
			name:    "missing path",
			mutate:  func(r *models.CreateMappingRequest) { r.ObsidianPath = "" },
			wantErr: "obsidianPath is required",
		},
		{
			name:    "traversal path",
			mutate:  func(r *models.CreateMappingRequest) { r.ObsidianPath = "../outside" },
			wantErr: "path traversal",
		},
		{
			name:    "absolute path",
			mutate:  func(r *models.CreateMappingRequest) { r.ObsidianPath = "/etc" },
			wantErr: "must be a relative path",
		},
		{
			name:    "windows absolute path",
			mutate:  func(r *models.CreateMappingRequest) { r.ObsidianPath = "C:\\vault" },
			wantErr: "must be a relative path",
		},
		{
			name: "path too long",
			mutate: func(r *models.CreateMappingRequest) {
				r.ObsidianPath = strings.Repeat("x", config.MaxPathLength+1)
			},
			wantErr: "exceeds maximum length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			err := CheckCreateMappingRequest(req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("CheckCreateMappingRequest: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("CheckCreateMappingRequest accepted an invalid request")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}
