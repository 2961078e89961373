package plan

// Package plan implements the price-window selection pipeline: it
// converts a raw price series into ranged points, partitions them into
// groups of consecutive cheap slots using a forward compare window, and
// clips each group to the configured duration bounds. All functions are
// pure; nothing here touches the network or the clock.
