// Package cluster groups scored, embedded items into theme clusters with a
// greedy single-pass sweep over cosine similarity.
package cluster
