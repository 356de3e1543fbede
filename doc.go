// Package main provides the entry point of the AppConfig service.
// It serves grouped key-value configuration to storefront apps over a fiber REST API,
// gates groups and entries by a minimum app version and resolves values into text,
// media urls, json documents and catalog backed products, categories and cms pages.
// Administration happens through an api key protected REST API and json or csv
// import and export.
package main
