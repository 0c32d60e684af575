// Package assist implements the scripted flood-safety assistant: a fixed
// catalog of canned answers and a rule-based classifier that maps free-text
// questions onto it.
//
// # Matching model
//
// Each intent carries a set of lowercase trigger words. A trigger matches when
// it appears anywhere in the normalized input as a substring — "carpool"
// matches the "car" trigger. This is deliberately not word-boundary matching;
// downstream behavior depends on it, so callers wanting stricter matching
// must change the trigger lists, not the containment rule.
//
// Response bodies are markdown-flavored text (bold markers, newline
// separators, a small emoji vocabulary). Rendering them is the UI
// collaborator's job.
package assist

// Category groups intents for rendering and metrics.
type Category string

const (
	CategoryEmergency   Category = "emergency"
	CategoryDriving     Category = "driving"
	CategoryNavigation  Category = "navigation"
	CategoryCommunity   Category = "community"
	CategoryPreparation Category = "preparation"
	CategoryInsurance   Category = "insurance"
	CategoryGreeting    Category = "greeting"
	CategoryDefault     Category = "default"
)

// Intent is one recognizable category of user question, bound one-to-one to
// a canned response. The catalog is immutable after process start.
type Intent struct {
	ID       string
	Category Category
	Response string
}

// IntentDefault is the fallback intent for unclassifiable input.
const IntentDefault = "default"

// IntentEmergency is returned unconditionally when an emergency trigger is present.
const IntentEmergency = "emergency"

// catalog maps intent ID to its response. Every entry in the keyword rule set
// has exactly one counterpart here, plus the default fallback.
var catalog = map[string]Intent{
	"water ahead": {
		ID:       "water ahead",
		Category: CategoryEmergency,
		Response: `🚨 **I see you've encountered water on the road!**

Here's a mock alternate driving route from **Basking Ridge, NJ (24 Hansom Rd)** to **Princeton University (Princeton, NJ)** — assuming your original route is blocked by floodwater.

⚠️ *Please verify in your navigation app before following it.*

**🧭 Alternate Directions**

1. Start on **Hansom Rd** heading toward South Maple Ave
2. Turn **right** onto **South Maple Ave**, then continue to merge onto **I-287 South**
3. Follow **I-287 South** for approximately 8-10 miles, staying left where lanes split
4. Take **Exit 10** to merge onto **US-202/US-206 South** toward Somerville/Princeton Junction
5. Continue on **US-202/US-206 South** for ~15 miles
6. Look for signs for **NJ-27 South** toward Princeton and take that exit
7. Follow **NJ-27 South** into Princeton. As you approach town, turn right onto **Nassau St**
8. Proceed on **Nassau St** to arrive at the central area of the university

**📌 Key Notes**
• Estimated driving distance: ~35–40 miles
• This route uses major highways to bypass smaller roads that may be flood-prone
• While NJ-27 is more direct into Princeton, you'll stay on highways as much as possible to minimize risk
• **Important:** Check your app for real-time updates. If any segment shows flooding or closure, stop and reroute again

**✅ What to Do Right Now**
• Switch your app's route to this alternate path (if safe and dry)
• Keep an eye on flood alerts for US-202/206 and NJ-27 — some sections might also be affected in heavy flooding
• Drive slowly and cautiously, especially at off-ramp merges and near areas known for water pooling

Would you like me to help you find another route or provide more safety information? 🛡️`,
	},

	"car not turning on": {
		ID:       "car not turning on",
		Category: CategoryEmergency,
		Response: `🚗 **If your car won't start in a flood:**

1. **DO NOT try to start the engine** - Water in the engine can cause severe damage
2. **Get to higher ground immediately** - Leave the car if water is rising
3. **Call for help** - Dial 911 if you're in danger
4. **Document everything** - Take photos for insurance
5. **Wait for a tow** - Have it towed to a mechanic, don't drive it

💡 **Remember:** Just 6 inches of moving water can knock you down, and 12 inches can carry away most vehicles.

**Need immediate help?** Call 911 or NJ Emergency Hotline: 2-1-1`,
	},

	"stuck in flood": {
		ID:       "stuck in flood",
		Category: CategoryEmergency,
		Response: `🚨 **If you're stuck in flood water:**

**IMMEDIATE ACTIONS:**
1. **Call 911 right now** if you're in immediate danger
2. **Stay in your car ONLY if water isn't rising** - It's safer than being swept away
3. **If water enters the car:**
   - Unbuckle seatbelt immediately
   - Roll down or break windows (aim for corners)
   - Escape through window, NOT the door
4. **Move to highest ground** - Climb on roof if needed
5. **Wave bright clothing** to signal rescuers

⚠️ **NEVER:**
- Try to drive through moving water
- Walk through flood water (hidden hazards, electricity)
- Touch electrical equipment or downed power lines

**Emergency contacts:**
- 911 (Police/Fire/EMS)
- NJ Emergency: 2-1-1
- Coast Guard: 1-800-544-8802`,
	},

	"flooded road": {
		ID:       "flooded road",
		Category: CategoryDriving,
		Response: `🚧 **Encountered a flooded road?**

**Safe Driving Rules:**
- **Turn Around, Don't Drown** - Most flood deaths occur in vehicles
- Just **6 inches of water** can cause loss of control
- **12 inches** can float most cars
- **2 feet** will carry away most vehicles including SUVs

**What to do:**
1. ✅ Turn around and find an alternate route
2. ✅ Use our Safe Routes feature to find dry paths
3. ✅ Report the flooding to help others
4. ❌ NEVER drive through moving water
5. ❌ Don't follow other vehicles through water

💡 **Tip:** Use route planning to check conditions before leaving!`,
	},

	"safe route": {
		ID:       "safe route",
		Category: CategoryNavigation,
		Response: `🗺️ **Finding a safe route during flooding:**

**Use the Safe Routes feature:**
1. Go to the **Safe Routes Map** in the navigation
2. Enter your starting location and destination
3. The system analyzes:
   - Current flood warnings from NWS
   - USGS stream gauge data
   - Community flood reports
   - AI flood predictions (2-6 hours ahead)

**Pro tips:**
- ✅ Check your route BEFORE leaving
- ✅ Save frequent routes for quick access
- ✅ Enable notifications for route alerts
- ✅ Add extra travel time during storms

🌟 **Try it now!** Click "Safe Routes Map" in the menu above.`,
	},

	"report flood": {
		ID:       "report flood",
		Category: CategoryCommunity,
		Response: `📱 **How to report flooding in your area:**

**Quick Report:**
1. Click **"Safe Routes Map"** in navigation
2. Scroll to the **"Report Flooding"** section (red card)
3. Click **"Report Flood"** button
4. Allow location access
5. Describe what you see

**What to include:**
- Water depth (ankle, knee, car-level)
- Road closure or passable
- Any hazards (downed lines, debris)
- Photos if safe to take

Your reports help keep the community safe! 🙏

⚠️ **Safety first:** Only report if you're in a safe location. Never stop in flood water to take photos.`,
	},

	"prepare flood": {
		ID:       "prepare flood",
		Category: CategoryPreparation,
		Response: `🎒 **Flood Preparation Checklist:**

**Before Flood Season:**
- ✅ Know your evacuation routes (use the Safe Routes feature)
- ✅ Create emergency kit (water, food, meds, flashlight, radio)
- ✅ Save emergency contacts
- ✅ Take photos of valuables for insurance
- ✅ Review insurance coverage (most policies don't cover floods)
- ✅ Enable flood notifications

**Emergency Kit Must-Haves:**
- Water (1 gallon/person/day for 3 days)
- Non-perishable food (3-day supply)
- Battery-powered radio
- Flashlight + extra batteries
- First aid kit
- Medications (7-day supply)
- Phone chargers (portable battery pack)
- Important documents (in waterproof bag)
- Cash

**NJ Specific:**
- Sign up for NJ Alert: https://www.nj.gov/njsp/alerts/
- Know your flood zone: FEMA Flood Map Service

📍 **Local Resources:**
- Red Cross NJ: 1-877-287-3327
- NJ 2-1-1: Health & human services info`,
	},

	"insurance": {
		ID:       "insurance",
		Category: CategoryInsurance,
		Response: `💰 **Flood Insurance Information:**

**Key Facts:**
- 🏠 Standard homeowner's insurance does NOT cover floods
- 💧 Flood insurance is separate and must be purchased
- ⏰ Usually requires 30-day waiting period
- 💵 Average cost in NJ: $700-$1,200/year

**What's Covered:**
- Building damage (structure, foundation, electrical)
- Contents (personal belongings - separate coverage)
- Cleanup costs
- Some debris removal

**Not Covered:**
- Living expenses during repairs
- Swimming pools
- Landscaping
- Vehicles (covered by auto insurance)

**Get Coverage:**
- NFIP (National Flood Insurance Program): FloodSmart.gov
- Private insurers (compare rates)
- Some policies offered through regular insurance agents

**Need Help?**
- FEMA Helpline: 1-800-427-4661
- FloodSmart: 1-888-379-9531

💡 **Even if you're not in a flood zone**, 20-25% of flood claims come from moderate-to-low risk areas!`,
	},

	"hello": {
		ID:       "hello",
		Category: CategoryGreeting,
		Response: `👋 **Hello! I'm your flood safety assistant.**

I can help you with:
- 🚗 Vehicle safety in floods
- 🗺️ Finding safe routes
- 📱 Reporting flood conditions
- 🎒 Emergency preparation
- 💰 Insurance information
- 🚨 Emergency procedures

**Try asking me:**
- "What should I do if my car is stuck in a flood?"
- "How do I find a safe route?"
- "How can I prepare for flooding?"
- "Tell me about flood insurance"

How can I help you stay safe today? 🛡️`,
	},

	"thank": {
		ID:       "thank",
		Category: CategoryGreeting,
		Response: `You're very welcome! 😊 Stay safe out there!

💡 **Remember:**
- Check the Safe Routes Map before traveling
- Report any flooding you encounter
- Share flood alerts with friends and family

Is there anything else I can help you with?

Stay informed, stay safe! 🛡️`,
	},

	"emergency": {
		ID:       "emergency",
		Category: CategoryEmergency,
		Response: `🚨 **THIS IS AN EMERGENCY? CALL 911 IMMEDIATELY!**

**Emergency Services:**
- 🚓 Police/Fire/Medical: **911**
- 📞 NJ Emergency Hotline: **2-1-1**
- 🌊 Coast Guard: **1-800-544-8802**
- ⚡ Report Downed Power Lines: **1-800-662-3115**

**If you're in immediate danger from flooding:**
1. Get to HIGH GROUND immediately
2. Stay out of flood water
3. Avoid downed power lines
4. Call 911 if trapped or injured

I'm here to provide information, but for life-threatening situations, always call emergency services first!

Stay safe! 🛡️`,
	},

	"default": {
		ID:       "default",
		Category: CategoryDefault,
		Response: `I'm not sure I understand that question, but I'm here to help! 🤔

**I can answer questions about:**
- 🚗 What to do if your car is stuck in a flood
- 🌊 How to handle flooded roads
- 🗺️ Finding safe routes in NJ
- 📱 Reporting flood conditions
- 🎒 Preparing for flood season
- 💰 Flood insurance basics
- 🚨 Emergency procedures

**Try asking:**
- "What should I do if my car won't start in a flood?"
- "How do I find a safe route?"
- "How can I report flooding?"
- "Tell me about emergency preparation"`,
	},
}

// Lookup returns the intent for the given ID, falling back to the default
// intent when the ID is unknown.
func Lookup(id string) Intent {
	if intent, ok := catalog[id]; ok {
		return intent
	}
	return catalog[IntentDefault]
}

// Intents returns all catalog entries in rule declaration order, with the
// default intent last. Useful for diagnostics and tests.
func Intents() []Intent {
	out := make([]Intent, 0, len(catalog))
	for _, rule := range keywordRules {
		out = append(out, catalog[rule.intent])
	}
	out = append(out, catalog[IntentDefault])
	return out
}
