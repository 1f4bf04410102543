package main

// @title Storefront Service API
// @version 1.0
// @description Catalog browsing, filter sessions and shopping cart for the storefront UI
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Catalog listing, lookup and statistics

// @tag.name Session
// @tag.description Per-visitor filter state

// @tag.name Cart
// @tag.description Per-visitor shopping cart

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
