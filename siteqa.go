// Package siteqa provides an LLM-assisted web scraper with a
// retrieval-augmented question-answering pipeline. Given a seed URL it
// discovers pages via sitemaps, fetches and cleans their HTML into
// markdown, chunks the result for embedding, and answers free-text
// questions by retrieving relevant chunks from a vector index.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, gemini/).
package siteqa
