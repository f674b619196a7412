// Package api holds the HTTP response models generated from openapi.yaml.
package api

//go:generate go tool oapi-codegen -config oapi-codegen.yaml openapi.yaml
