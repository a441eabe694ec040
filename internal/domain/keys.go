package domain

// KeyPrefix is the default namespace for every key flossdex writes to the store.
const KeyPrefix = "flossdex:"
