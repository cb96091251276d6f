package utils

const REVISION = "1.2.0"
