package resource

// JenkinsOneAtATime computes Bob Jenkins' one-at-a-time 32-bit hash of
// data, seeded with seed. The archive format hashes record paths with this
// function (seed 0), matching hash_jenkins_one_at_a_time's call sites
// throughout the resource subsystem of the source material.
func JenkinsOneAtATime(data []byte, seed uint32) uint32 {
	hash := seed
	for _, b := range data {
		hash += uint32(b)
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

// HashPath is the archive-format convenience: the hash of a resource path
// string, seeded at zero (§4.4 "Declare", §6 "Archive file format").
func HashPath(path string) uint32 {
	return JenkinsOneAtATime([]byte(path), 0)
}
