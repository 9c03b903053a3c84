package common

// UnknownStr is printed for values outside a known set.
const UnknownStr = "unknown"
