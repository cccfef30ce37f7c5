package lexicon

// stopwords are common English function words dropped during keyword
// extraction. Roughly the usual ~170-entry list.
var stopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an",
	"and", "any", "are", "aren", "arent", "as", "at", "be", "because", "been",
	"before", "being", "below", "between", "both", "but", "by", "can", "cant",
	"cannot", "could", "couldnt", "did", "didnt", "do", "does", "doesnt",
	"doing", "dont", "down", "during", "each", "few", "for", "from",
	"further", "get", "got", "had", "hadnt", "has", "hasnt", "have", "havent",
	"having", "he", "hed", "hell", "hes", "her", "here", "heres", "hers",
	"herself", "him", "himself", "his", "how", "hows", "i", "id", "ill", "im",
	"ive", "if", "in", "into", "is", "isnt", "it", "its", "itself", "just",
	"lets", "like", "me", "more", "most", "mustnt", "my", "myself", "no",
	"nor", "not", "of", "off", "on", "once", "only", "or", "other", "ought",
	"our", "ours", "ourselves", "out", "over", "own", "really", "same",
	"shant", "she", "shed", "shell", "shes", "should", "shouldnt", "so",
	"some", "such", "than", "that", "thats", "the", "their", "theirs",
	"them", "themselves", "then", "there", "theres", "these", "they", "theyd",
	"theyll", "theyre", "theyve", "this", "those", "through", "to", "too",
	"under", "until", "up", "very", "was", "wasnt", "we", "wed", "well",
	"were", "weve", "werent", "what", "whats", "when", "whens", "where",
	"wheres", "which", "while", "who", "whos", "whom", "why", "whys", "will",
	"with", "wont", "would", "wouldnt", "you", "youd", "youll", "youre",
	"youve", "your", "yours", "yourself", "yourselves",
}

// positiveWords and negativeWords drive the lexicon sentiment scorer.
// Matching is substring containment over lowercased text, so an entry also
// hits its inflections ("improve" would hit "improvement"). The two lists
// must stay substring-disjoint: an entry like "happy" alongside "unhappy"
// would score one hit on each side and cancel out.
var positiveWords = []string{
	"amazing", "appreciate", "awesome", "beneficial", "brilliant",
	"collaborative", "delighted", "easy", "effective", "encouraging",
	"engaging", "enjoy", "excellent", "fantastic", "flexible", "friendly",
	"fun", "glad", "good", "great", "impressive", "improved", "inspiring",
	"love", "motivating", "nice", "outstanding", "perfect", "pleased",
	"positive", "rewarding", "satisfied", "smooth", "strong", "supportive",
	"thank", "useful", "valuable", "welcoming", "wonderful",
}

var negativeWords = []string{
	"angry", "annoying", "awful", "bad", "broken", "chaotic", "concerned",
	"confusing", "disappointed", "disappointing", "difficult", "dreadful",
	"exhausting", "frustrated", "frustrating", "hate", "horrible",
	"inefficient", "lacking", "mediocre", "messy", "miserable", "negative",
	"overwhelmed", "overworked", "painful", "poor", "sad", "slow",
	"stressful", "terrible", "tired", "toxic", "unclear", "uncomfortable",
	"unfair", "unhappy", "unhelpful", "unpleasant", "unproductive",
	"unreliable", "useless", "waste", "worst", "worried",
}

// profanityWords is the ordinary-language blocklist. Single words match on
// word boundaries; multi-word entries match as substrings.
var profanityWords = []string{
	"ass", "bastard", "bitch", "bloody hell", "bullshit", "crap", "damn",
	"dammit", "dickhead", "fuck", "fucking", "goddamn", "jackass", "piss",
	"pissed off", "prick", "screw you", "shit", "shitty", "wtf",
}

// severeWords covers threats, harassment, and hate speech. A match here
// short-circuits moderation with a generic reason.
var severeWords = []string{
	"kill", "murder", "die", "death threat", "i will hurt", "hurt you",
	"beat you up", "attack you", "destroy you", "kys", "hang yourself",
	"go to hell", "hate crime", "lynch", "rape", "slit", "stab", "shoot you",
	"threaten", "worthless piece",
}
