package main

// General API documentation for swaggo. Run `swag init -g cmd/auracore/docs.go` to regenerate docs.
//
// @title           auracore API
// @version         1.0
// @description     HTTP API for the on-device AI core: request routing, local generation and runtime lifecycle.
//
// @contact.name   auracore maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
