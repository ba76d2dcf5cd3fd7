package handlers

// @title Club Dvigi API
// @version 1.0
// @description Registration backend for the Club Dvigi storefront form. Customers and their warranty products are stored in Shopify.

// @contact.name Dvigi
// @contact.url https://dvigi.com.ar

// @host localhost:8081
// @BasePath /api

// @tag.name clubdvigi
// @tag.description Club Dvigi registration and lookup
